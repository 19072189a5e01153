package config

import (
	"survey-portal-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "survey_portal"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Africa/Nairobi"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:             utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 30),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 2),
		},
		Backend: AppBackend{
			ODataBaseUrl:         utils.GetEnvString("BACKEND_ODATA_BASE_URL", "http://localhost:7048"),
			SOAPBaseUrl:          utils.GetEnvString("BACKEND_SOAP_BASE_URL", "http://localhost:7047"),
			Instance:             utils.GetEnvString("BACKEND_INSTANCE", "KCICCTEST"),
			Company:              utils.GetEnvString("BACKEND_COMPANY", "CRONUS International Ltd."),
			Username:             utils.GetEnvString("BACKEND_USERNAME", ""),
			Password:             utils.GetEnvString("BACKEND_PASSWORD", ""),
			Codeunit:             utils.GetEnvString("BACKEND_CODEUNIT", "ProjectQuestions"),
			HTTPTimeoutInSeconds: utils.GetEnvInt("BACKEND_HTTP_TIMEOUT_IN_SECONDS", 15),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 12),
		},
		Questionnaire: AppQuestionnaire{
			PageSize:                    utils.GetEnvInt("QUESTIONNAIRE_PAGE_SIZE", 10),
			FallbackLatitude:            utils.GetEnvFloat("QUESTIONNAIRE_FALLBACK_LATITUDE", -1.286389),
			FallbackLongitude:           utils.GetEnvFloat("QUESTIONNAIRE_FALLBACK_LONGITUDE", 36.817223),
			SessionExpiredTimeInMinutes: utils.GetEnvInt("QUESTIONNAIRE_SESSION_EXPIRED_TIME_IN_MINUTES", 240),
			SessionLockTimeInSeconds:    utils.GetEnvInt("QUESTIONNAIRE_SESSION_LOCK_TIME_IN_SECONDS", 120),
			SubmissionRatePerSecond:     utils.GetEnvFloat("QUESTIONNAIRE_SUBMISSION_RATE_PER_SECOND", 5),
			SubmissionBurst:             utils.GetEnvInt("QUESTIONNAIRE_SUBMISSION_BURST", 1),
			SubmitTimeoutInSeconds:      utils.GetEnvInt("QUESTIONNAIRE_SUBMIT_TIMEOUT_IN_SECONDS", 90),
		},
		Survey: AppSurvey{
			CacheExpiredTimeInMinutes: utils.GetEnvInt("SURVEY_CACHE_EXPIRED_TIME_IN_MINUTES", 5),
			StatusCheckBatchSize:      utils.GetEnvInt("SURVEY_STATUS_CHECK_BATCH_SIZE", 3),
		},
		RabbitMQ: AppRabbitMQ{
			SurveySubmittedQueue: utils.GetEnvString("APP_RABBITMQ_SURVEY_SUBMITTED_QUEUE", "survey_submitted"),
		},
		Minio: AppMinio{
			ReceiptBucketName: utils.GetEnvString("APP_MINIO_RECEIPT_BUCKET_NAME", "survey-receipts"),
		},
		MongoDB: AppMongoDB{
			SubmissionCollection: utils.GetEnvString("APP_MONGODB_SUBMISSION_COLLECTION", "submissions"),
		},
	}
}
