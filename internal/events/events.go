// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types.
const (
	OrderPlaced     = "order.placed"
	MedicineCreated = "medicine.created"
	MedicineUpdated = "medicine.updated"
	MedicineDeleted = "medicine.deleted"
)

// Envelope is the JSON value written for every event.
type Envelope struct {
	Type       string    `json:"type"`
	Data       any       `json:"data"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher sends one event keyed by the entity id.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, data any) error
	Close() error
}

// Writer is the part of kafka.Writer the producer uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a single topic.
type KafkaPublisher struct {
	writer Writer
	now    func() time.Time
}

// NewKafkaPublisher writes to topic on broker.
func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

// NewKafkaPublisherWithWriter allows injecting a test writer.
func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w, now: time.Now}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType, key string, data any) error {
	b, err := json.Marshal(Envelope{Type: eventType, Data: data, OccurredAt: p.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode %s: %w", eventType, err)
	}
	msg := kafka.Message{
		Key:     []byte(key),
		Value:   b,
		Headers: []kafka.Header{{Key: "type", Value: []byte(eventType)}},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Nop drops every event. It is used when KAFKA_BROKER is unset.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                       { return nil }

// PublishAsync publishes in the background with its own timeout so a slow
// broker never holds up the request. Failures are logged.
func PublishAsync(p Publisher, eventType, key string, data any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Publish(ctx, eventType, key, data); err != nil {
			log.Printf("event %s %s: %v", eventType, key, err)
		}
	}()
}
