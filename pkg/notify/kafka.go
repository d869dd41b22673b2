package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-touring-backend/internal/domain"

	"github.com/segmentio/kafka-go"
)

const contactEventType = "contact.submitted"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes accepted submissions as JSON events keyed by
// reference id.
type KafkaNotifier struct {
	writer messageWriter
	topic  string
}

func NewKafkaNotifier(brokers []string, topic string) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
	}
	return &KafkaNotifier{writer: writer, topic: topic}, nil
}

func (n *KafkaNotifier) Notify(ctx context.Context, envelope domain.ContactEnvelope) error {
	msg, err := contactMessage(envelope)
	if err != nil {
		return err
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", n.topic, err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func contactMessage(envelope domain.ContactEnvelope) (kafka.Message, error) {
	value, err := json.Marshal(envelope)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode contact event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(envelope.ReferenceID),
		Value: value,
		Time:  envelope.ReceivedAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(contactEventType)},
		},
	}, nil
}
