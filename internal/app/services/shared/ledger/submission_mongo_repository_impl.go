package ledger

import (
	"context"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/app/models"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// SubmissionMongoRepository keeps one document per answer record sent, or
// attempted, for a questionnaire session.
type SubmissionMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

func NewSubmissionMongoRepository(db *mongo.Client, dbName, collectionName string, logger *zap.Logger) contracts.SubmissionLedger {
	return &SubmissionMongoRepository{
		Collection: db.Database(dbName).Collection(collectionName),
		Log:        logger,
	}
}

func (repo *SubmissionMongoRepository) Record(ctx context.Context, entry *models.SubmissionEntry) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Debug("SubmissionMongoRepository.Record called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, entry.SessionID),
		zap.Int(constvars.LoggingQuizNoKey, entry.Record.QuizNo),
	)

	_, err := repo.Collection.InsertOne(ctx, entry)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *SubmissionMongoRepository) FindBySessionID(ctx context.Context, sessionID string) ([]models.SubmissionEntry, error) {
	entries := make([]models.SubmissionEntry, 0)
	opts := options.Find().SetSort(bson.D{{Key: constvars.SubmissionLedgerRecordedAt, Value: 1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{constvars.SubmissionLedgerSessionID: sessionID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	err = cursor.All(ctx, &entries)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return entries, nil
}

// EnsureIndexes creates the session lookup index used by FindBySessionID.
func (repo *SubmissionMongoRepository) EnsureIndexes(ctx context.Context) (string, error) {
	index := mongo.IndexModel{
		Keys: bson.D{
			{Key: constvars.SubmissionLedgerSessionID, Value: 1},
			{Key: constvars.SubmissionLedgerRecordedAt, Value: 1},
		},
		Options: options.Index().SetName("session_id_recorded_at"),
	}
	name, err := repo.Collection.Indexes().CreateOne(ctx, index)
	if err != nil {
		return "", exceptions.ErrMongoDBCreateIndex(err)
	}
	return name, nil
}
