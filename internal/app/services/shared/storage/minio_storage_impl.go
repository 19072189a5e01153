package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/app/models"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectPutter is the slice of *minio.Client the receipt archive needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioStorage struct {
	MinioClient ObjectPutter
	BucketName  string
	Log         *zap.Logger
}

func NewMinioStorage(minioClient ObjectPutter, bucketName string, logger *zap.Logger) contracts.ReceiptStorage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
		Log:         logger,
	}
}

// StoreReceipt writes the receipt as JSON under survey/email/session and
// returns the object name.
func (m *minioStorage) StoreReceipt(ctx context.Context, receipt *models.SubmissionReceipt) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	objectName := fmt.Sprintf(constvars.ReceiptObjectNameFormat, receipt.SurveyCode, receipt.Email, receipt.SessionID)
	m.Log.Info("minioStorage.StoreReceipt called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketNameKey, m.BucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)

	body, err := json.Marshal(receipt)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	_, err = m.MinioClient.PutObject(ctx, m.BucketName, objectName, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: constvars.MIMEApplicationJSON,
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return objectName, nil
}
