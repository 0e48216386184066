package kafka

import (
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// NewWriter builds a shared writer; the topic is chosen per message.
func NewWriter(brokers string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(strings.Split(brokers, ",")...),
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafkago.RequireOne,
	}
}

// NewReader builds a consumer-group reader for one topic.
func NewReader(brokers, groupID, topic string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
