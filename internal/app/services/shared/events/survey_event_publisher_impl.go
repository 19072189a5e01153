package events

import (
	"context"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/app/models"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Channel is the slice of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type surveyEventPublisher struct {
	ch        Channel
	queueName string
	log       *zap.Logger
	mu        sync.Mutex
}

// NewSurveyEventPublisher opens a channel on conn and declares the durable
// queue survey events are published to.
func NewSurveyEventPublisher(conn *amqp.Connection, queueName string, log *zap.Logger) (contracts.EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	return newSurveyEventPublisher(ch, queueName, log), nil
}

func newSurveyEventPublisher(ch Channel, queueName string, log *zap.Logger) *surveyEventPublisher {
	return &surveyEventPublisher{
		ch:        ch,
		queueName: queueName,
		log:       log,
	}
}

func (p *surveyEventPublisher) PublishSurveySubmitted(ctx context.Context, event *models.SubmissionEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("surveyEventPublisher.PublishSurveySubmitted called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, p.queueName),
		zap.String(constvars.LoggingSessionIDKey, event.SessionID),
	)

	event.Event = constvars.EventSurveySubmitted
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.SessionID,
		Type:         constvars.EventSurveySubmitted,
		Headers: amqp.Table{
			constvars.LoggingRequestIDKey: requestID,
		},
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}
	return nil
}
