package config

type InternalConfig struct {
	App           App              `mapstructure:"app"`
	Backend       AppBackend       `mapstructure:"backend"`
	JWT           AppJWT           `mapstructure:"jwt"`
	Questionnaire AppQuestionnaire `mapstructure:"questionnaire"`
	Survey        AppSurvey        `mapstructure:"survey"`
	RabbitMQ      AppRabbitMQ      `mapstructure:"rabbitmq"`
	Minio         AppMinio         `mapstructure:"minio"`
	MongoDB       AppMongoDB       `mapstructure:"mongodb"`
}

type App struct {
	Env                        string   `mapstructure:"env"`
	Port                       string   `mapstructure:"port"`
	Version                    string   `mapstructure:"version"`
	Address                    string   `mapstructure:"address"`
	Timezone                   string   `mapstructure:"timezone"`
	EndpointPrefix             string   `mapstructure:"endpoint_prefix"`
	AllowedOrigins             []string `mapstructure:"allowed_origins"`
	MaxRequests                int      `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int      `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds    int      `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int      `mapstructure:"request_body_limit_in_megabyte"`
}

// AppBackend points at the ERP instance serving the OData entity sets and the
// ProjectQuestions SOAP codeunit.
type AppBackend struct {
	ODataBaseUrl         string `mapstructure:"odata_base_url"`
	SOAPBaseUrl          string `mapstructure:"soap_base_url"`
	Instance             string `mapstructure:"instance"`
	Company              string `mapstructure:"company"`
	Username             string `mapstructure:"username"`
	Password             string `mapstructure:"password"`
	Codeunit             string `mapstructure:"codeunit"`
	HTTPTimeoutInSeconds int    `mapstructure:"http_timeout_in_seconds"`
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}

type AppQuestionnaire struct {
	PageSize                    int     `mapstructure:"page_size"`
	FallbackLatitude            float64 `mapstructure:"fallback_latitude"`
	FallbackLongitude           float64 `mapstructure:"fallback_longitude"`
	SessionExpiredTimeInMinutes int     `mapstructure:"session_expired_time_in_minutes"`
	SessionLockTimeInSeconds    int     `mapstructure:"session_lock_time_in_seconds"`
	SubmissionRatePerSecond     float64 `mapstructure:"submission_rate_per_second"`
	SubmissionBurst             int     `mapstructure:"submission_burst"`
	SubmitTimeoutInSeconds      int     `mapstructure:"submit_timeout_in_seconds"`
}

type AppSurvey struct {
	CacheExpiredTimeInMinutes int `mapstructure:"cache_expired_time_in_minutes"`
	StatusCheckBatchSize      int `mapstructure:"status_check_batch_size"`
}

type AppRabbitMQ struct {
	SurveySubmittedQueue string `mapstructure:"survey_submitted_queue"`
}

type AppMinio struct {
	ReceiptBucketName string `mapstructure:"receipt_bucket_name"`
}

type AppMongoDB struct {
	SubmissionCollection string `mapstructure:"submission_collection"`
}
