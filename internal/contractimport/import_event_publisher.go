package contractimport

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/events"
)

type EventPublisher interface {
	PublishContractImported(ctx context.Context, event events.ContractImportedEvent) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishContractImported(context.Context, events.ContractImportedEvent) error {
	return nil
}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

type kafkaEventPublisher struct {
	writer *kafka.Writer
}

func NewKafkaEventPublisher(writer *kafka.Writer) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishContractImported(
	ctx context.Context,
	event events.ContractImportedEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: events.ContractImportedTopic,
		Key:   []byte(event.ContractID),
		Value: payload,
	})
}
