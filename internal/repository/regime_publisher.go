package repository

import (
	"context"
	"fmt"

	"BetaPulse/internal/domain/models"
	domrepo "BetaPulse/internal/domain/repository"
	pkgkafka "BetaPulse/pkg/kafka"
)

// KafkaRegimePublisher publishes regime-change events for downstream
// alerting consumers. The event key is the regime transition so consumers
// partition by transition type.
type KafkaRegimePublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaRegimePublisher creates the Kafka-backed publisher.
func NewKafkaRegimePublisher(producer *pkgkafka.Producer, topic string) *KafkaRegimePublisher {
	return &KafkaRegimePublisher{producer: producer, topic: topic}
}

func (p *KafkaRegimePublisher) PublishRegimeChange(ctx context.Context, ev *models.RegimeEvent) error {
	key := []byte(fmt.Sprintf("%s->%s", ev.Previous, ev.Current))
	if err := p.producer.Publish(ctx, p.topic, key, ev); err != nil {
		return fmt.Errorf("publish regime change: %w", err)
	}
	return nil
}

func (p *KafkaRegimePublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher is used when event publishing is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishRegimeChange(context.Context, *models.RegimeEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

var (
	_ domrepo.Publisher = (*KafkaRegimePublisher)(nil)
	_ domrepo.Publisher = NoopPublisher{}
)
