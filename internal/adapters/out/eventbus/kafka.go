package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes domain events as JSON messages keyed by aggregate id,
// so all events of one parcel land on the same partition in order.
type KafkaPublisher struct {
	writer Writer
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher connects to brokers and writes to topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	})
}

// NewKafkaPublisherWithWriter allows injecting a test writer.
func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", e.EventType(), err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.PartitionKey()),
			Value: value,
			Time:  e.OccurredAt(),
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(e.EventType())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d events: %w", len(msgs), err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
