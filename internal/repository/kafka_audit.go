package repository

import (
	"context"

	domrepo "LiquiDash/internal/domain/repository"
	pkgkafka "LiquiDash/pkg/kafka"
)

// KafkaAuditPublisher implements AuditPublisher on a Kafka topic. Keyed
// by event kind so per-kind ordering survives partitioning.
type KafkaAuditPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAuditPublisher creates a Kafka-backed audit publisher.
func NewKafkaAuditPublisher(producer *pkgkafka.Producer, topic string) *KafkaAuditPublisher {
	return &KafkaAuditPublisher{producer: producer, topic: topic}
}

func (p *KafkaAuditPublisher) Publish(ctx context.Context, event domrepo.AuditEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(event.Kind), event)
}

func (p *KafkaAuditPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopAuditPublisher discards audit events; used when auditing is
// disabled in config.
type NoopAuditPublisher struct{}

func (NoopAuditPublisher) Publish(context.Context, domrepo.AuditEvent) error { return nil }
func (NoopAuditPublisher) Close() error                                      { return nil }

var (
	_ domrepo.AuditPublisher = (*KafkaAuditPublisher)(nil)
	_ domrepo.AuditPublisher = NoopAuditPublisher{}
)
