package notification

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/events"
)

// Sender performs the actual delivery of one templated email.
type Sender interface {
	Send(ctx context.Context, to, template string, params map[string]string) error
}

// ConsumeEmailRequests drains the email topic and delivers each request.
// Delivery failures are logged and the message is still committed: email is
// best-effort by contract and must never wedge the consumer.
func ConsumeEmailRequests(
	ctx context.Context,
	reader *kafkago.Reader,
	sender Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.email")
	log.Info("email consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("email consumer stopped")
				return
			}
			log.Error("fetch email message failed", zap.Error(err))
			continue
		}

		var event events.EmailRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode email_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sender.Send(ctx, event.To, event.Template, event.Params); err != nil {
			log.Warn("email delivery failed",
				zap.String("to", event.To),
				zap.String("template", event.Template),
				zap.Error(err),
			)
		} else {
			log.Info("email delivered",
				zap.String("to", event.To),
				zap.String("template", event.Template),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit email message failed", zap.Error(err))
		}
	}
}
