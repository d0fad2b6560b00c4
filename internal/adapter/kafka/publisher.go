// Package kafka publishes export-completed events.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/config"
	"github.com/couchcryptid/field-survey-reports/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the part of kafka-go's Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher produces one message per completed export.
// It implements pipeline.Notifier.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a Kafka producer for the configured export topic.
func NewPublisher(cfg *config.Config) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaExportTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

// Publish sends the event keyed by its target, so every export of the same
// survey or site lands on the same partition in order.
func (p *Publisher) Publish(ctx context.Context, event domain.ExportEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an ExportEvent into a Kafka message.
func serializeToMessage(event domain.ExportEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize export event: %w", err)
	}
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte("report.exported")},
		{Key: "kind", Value: []byte(event.Kind)},
		{Key: "exported_at", Value: []byte(event.ExportedAt.Format(time.RFC3339))},
	}
	if event.SurveyType != "" {
		headers = append(headers, kafkago.Header{Key: "survey_type", Value: []byte(event.SurveyType)})
	}
	return kafkago.Message{
		Key:     []byte(event.Target),
		Value:   data,
		Headers: headers,
	}, nil
}
