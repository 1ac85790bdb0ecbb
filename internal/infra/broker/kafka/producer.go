package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	"festiloc/internal/domain/shared/events"
)

type Producer struct {
	sync  sarama.SyncProducer
	topic string
}

// NewProducer builds an idempotent sync producer publishing to the given
// topic (prefix applied by the caller).
func NewProducer(brokers []string, topic string, cfg *sarama.Config) (*Producer, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1
	sync, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{sync: sync, topic: topic}, nil
}

type envelope struct {
	Name       string          `json:"name"`
	Aggregate  string          `json:"aggregate_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Publish sends each domain event as a JSON envelope keyed by aggregate ID,
// so events of one reservation stay ordered within a partition.
func (p *Producer) Publish(ctx context.Context, evs ...events.DomainEvent) error {
	for _, ev := range evs {
		payload, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		body, err := json.Marshal(envelope{
			Name:       ev.EventName(),
			Aggregate:  ev.AggregateID(),
			OccurredAt: ev.OccurredAt(),
			Payload:    payload,
		})
		if err != nil {
			return err
		}
		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(ev.AggregateID()),
			Value: sarama.ByteEncoder(body),
			Headers: []sarama.RecordHeader{
				{Key: []byte("event"), Value: []byte(ev.EventName())},
			},
		}
		if _, _, err := p.sync.SendMessage(msg); err != nil {
			return err
		}
	}
	return nil
}

func (p *Producer) Close() error {
	if p.sync == nil {
		return nil
	}
	return p.sync.Close()
}
