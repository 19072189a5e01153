package main

import (
	"context"
	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/drivers/database"
	"survey-portal-service/internal/app/drivers/logger"
	"survey-portal-service/internal/app/drivers/storage"
	"survey-portal-service/internal/app/services/shared/ledger"
	"survey-portal-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

// Prepares the stores the HTTP service writes to: the submission ledger
// indexes and the receipt bucket.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	mongoDB := database.NewMongoDB(driverConfig)
	defer mongoDB.Disconnect(ctx)

	submissionLedger := ledger.NewSubmissionMongoRepository(
		mongoDB,
		driverConfig.MongoDB.DbName,
		internalConfig.MongoDB.SubmissionCollection,
		log,
	).(*ledger.SubmissionMongoRepository)

	indexName, err := submissionLedger.EnsureIndexes(ctx)
	if err != nil {
		log.Fatal("Failed to create submission ledger indexes", zap.Error(err))
	}
	log.Info("Submission ledger indexes ready",
		zap.String(constvars.LoggingCollectionKey, internalConfig.MongoDB.SubmissionCollection),
		zap.String("index_name", indexName),
	)

	minioClient := storage.NewMinio(driverConfig)
	err = storage.EnsureBucket(ctx, minioClient, internalConfig.Minio.ReceiptBucketName)
	if err != nil {
		log.Fatal("Failed to create receipt bucket", zap.Error(err))
	}
	log.Info("Receipt bucket ready",
		zap.String(constvars.LoggingBucketNameKey, internalConfig.Minio.ReceiptBucketName),
	)
}
