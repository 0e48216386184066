// Package notification publishes email requests to the message bus. The
// actual SMTP delivery happens in the notification consumer.
package notification

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/events"
)

// Mailer requests a templated email send. Implementations must be
// fire-and-forget from the caller's point of view.
type Mailer interface {
	SendTemplate(ctx context.Context, to, template string, params map[string]string) error
}

type noopMailer struct{}

func (noopMailer) SendTemplate(context.Context, string, string, map[string]string) error {
	return nil
}

// NewNoopMailer is used in tests and when no broker is configured.
func NewNoopMailer() Mailer {
	return noopMailer{}
}

type kafkaMailer struct {
	writer *kafkago.Writer
}

func NewKafkaMailer(writer *kafkago.Writer) Mailer {
	return &kafkaMailer{writer: writer}
}

func (m *kafkaMailer) SendTemplate(ctx context.Context, to, template string, params map[string]string) error {
	event := events.EmailRequestedEvent{
		EventType:  "email_requested",
		To:         to,
		Template:   template,
		Params:     params,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return m.writer.WriteMessages(ctx, kafkago.Message{
		Topic: events.EmailRequestedTopic,
		Key:   []byte(to),
		Value: payload,
	})
}
