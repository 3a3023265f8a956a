package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"reserva/internal/shared/config"
	"reserva/pkg/logger"
)

// Producer publishes reservation lifecycle events to Kafka.
// It satisfies the Notifier interfaces of the reservations and
// payments services.
type Producer interface {
	PublishReservationCreated(ctx context.Context, reservationID, eventID, requesterID string) error
	PublishReservationsExpired(ctx context.Context, count int64) error
	PublishSettlementRecorded(ctx context.Context, reservationID, outcome string) error
	Close() error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewProducer creates a synchronous Kafka producer for the reservation topic.
func NewProducer(cfg config.KafkaConfig, log *logger.Logger) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaProducer{
		producer: producer,
		topic:    cfg.Topic,
		log:      log,
	}, nil
}

func (p *kafkaProducer) PublishReservationCreated(ctx context.Context, reservationID, eventID, requesterID string) error {
	return p.publish(ctx, reservationID, ReservationEvent{
		ID:            uuid.New().String(),
		Type:          EventReservationCreated,
		ReservationID: reservationID,
		EventID:       eventID,
		RequesterID:   requesterID,
		Timestamp:     time.Now().UTC(),
	})
}

func (p *kafkaProducer) PublishSettlementRecorded(ctx context.Context, reservationID, outcome string) error {
	return p.publish(ctx, reservationID, ReservationEvent{
		ID:            uuid.New().String(),
		Type:          EventSettlementRecorded,
		ReservationID: reservationID,
		Outcome:       outcome,
		Timestamp:     time.Now().UTC(),
	})
}

func (p *kafkaProducer) PublishReservationsExpired(ctx context.Context, count int64) error {
	return p.publish(ctx, "sweeper", ReservationEvent{
		ID:           uuid.New().String(),
		Type:         EventReservationsExpired,
		ExpiredCount: count,
		Timestamp:    time.Now().UTC(),
	})
}

func (p *kafkaProducer) publish(ctx context.Context, key string, event ReservationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal reservation event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(event.ID)},
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("producer"), Value: []byte("reserva-api")},
		},
		Timestamp: event.Timestamp,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send reservation event to Kafka: %w", err)
	}

	p.log.InfoWithContext(ctx, "Reservation event published", map[string]interface{}{
		"topic":     p.topic,
		"type":      string(event.Type),
		"partition": partition,
		"offset":    offset,
	})
	return nil
}

func (p *kafkaProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}
