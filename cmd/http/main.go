package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/delivery/http/controllers"
	"survey-portal-service/internal/app/delivery/http/middlewares"
	"survey-portal-service/internal/app/delivery/http/routers"
	"survey-portal-service/internal/app/drivers/database"
	"survey-portal-service/internal/app/drivers/logger"
	"survey-portal-service/internal/app/drivers/messaging"
	"survey-portal-service/internal/app/drivers/storage"
	"survey-portal-service/internal/app/services/backend"
	"survey-portal-service/internal/app/services/backend/odata"
	"survey-portal-service/internal/app/services/backend/soap"
	"survey-portal-service/internal/app/services/core/auth"
	"survey-portal-service/internal/app/services/core/questionnaires"
	"survey-portal-service/internal/app/services/core/surveys"
	"survey-portal-service/internal/app/services/shared/events"
	"survey-portal-service/internal/app/services/shared/jwtmanager"
	"survey-portal-service/internal/app/services/shared/ledger"
	"survey-portal-service/internal/app/services/shared/locker"
	"survey-portal-service/internal/app/services/shared/redis"
	sharedStorage "survey-portal-service/internal/app/services/shared/storage"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	log.Info("Starting survey portal service",
		zap.String("version", Version),
		zap.String("tag", Tag),
	)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		log.Info("Server listening", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release drivers", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Backend
	httpClient := &http.Client{
		Timeout: time.Duration(bootstrap.InternalConfig.Backend.HTTPTimeoutInSeconds) * time.Second,
	}
	odataClient := odata.NewODataClient(bootstrap.InternalConfig.Backend, httpClient, bootstrap.Logger)
	soapClient := soap.NewSOAPClient(bootstrap.InternalConfig.Backend, httpClient, bootstrap.Logger)
	backendRepository := backend.NewBackendRepository(odataClient, soapClient, bootstrap.Logger)

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewRedisLocker(redisRepository, bootstrap.Logger)
	sessionRepository := questionnaires.NewSessionRedisRepository(redisRepository)

	// Submission side effects
	submissionLedger := ledger.NewSubmissionMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
		bootstrap.InternalConfig.MongoDB.SubmissionCollection,
		bootstrap.Logger,
	)
	eventPublisher, err := events.NewSurveyEventPublisher(
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.RabbitMQ.SurveySubmittedQueue,
		bootstrap.Logger,
	)
	if err != nil {
		return err
	}
	err = storage.EnsureBucket(ctx, bootstrap.Minio, bootstrap.InternalConfig.Minio.ReceiptBucketName)
	if err != nil {
		return err
	}
	receiptStorage := sharedStorage.NewMinioStorage(
		bootstrap.Minio,
		bootstrap.InternalConfig.Minio.ReceiptBucketName,
		bootstrap.Logger,
	)

	// Token
	tokenManager, err := jwtmanager.NewJWTManager(bootstrap.InternalConfig, bootstrap.Logger)
	if err != nil {
		return err
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, tokenManager, bootstrap.InternalConfig)

	// Auth
	authUsecase := auth.NewAuthUsecase(backendRepository, tokenManager, bootstrap.Logger)
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase, bootstrap.InternalConfig)

	// Survey
	surveyUsecase := surveys.NewSurveyUsecase(backendRepository, redisRepository, bootstrap.InternalConfig, bootstrap.Logger)
	surveyController := controllers.NewSurveyController(bootstrap.Logger, surveyUsecase, bootstrap.InternalConfig)

	// Questionnaire
	questionnaireUsecase := questionnaires.NewQuestionnaireUsecase(
		backendRepository,
		sessionRepository,
		lockerService,
		submissionLedger,
		eventPublisher,
		receiptStorage,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	questionnaireController := controllers.NewQuestionnaireController(bootstrap.Logger, questionnaireUsecase, bootstrap.InternalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		authController,
		surveyController,
		questionnaireController,
	)
	return nil
}
