// Package kafka publica los movimientos confirmados en un tópico Kafka (IBM/sarama).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/medsupply-api/internal/application/inventory"
	"github.com/jhoicas/medsupply-api/pkg/config"
)

// EventTypeMovementRecorded valor del header event-type.
const EventTypeMovementRecorded = "StockMovementRecorded"

var _ inventory.MovementPublisher = (*MovementPublisher)(nil)

// MovementRecordedMessage cuerpo JSON del evento.
type MovementRecordedMessage struct {
	EventID          string    `json:"eventId"`
	MovementID       int64     `json:"movementId"`
	ProductID        int64     `json:"productId"`
	Type             string    `json:"type"`
	Quantity         int64     `json:"quantity"`
	PreviousQuantity int64     `json:"previousQuantity"`
	NewQuantity      int64     `json:"newQuantity"`
	Date             time.Time `json:"date"`
}

// MovementPublisher implementa inventory.MovementPublisher con un SyncProducer.
// La clave de partición es el ID del producto: los eventos de un mismo producto conservan el orden.
type MovementPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

// NewMovementPublisher crea el productor contra cfg.Brokers.
func NewMovementPublisher(cfg config.KafkaConfig, log zerolog.Logger) (*MovementPublisher, error) {
	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Producer.Return.Successes = true
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 3
	sc.Producer.Idempotent = true
	sc.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("crear productor kafka: %w", err)
	}
	return NewMovementPublisherWithProducer(producer, cfg.Topic, log), nil
}

// NewMovementPublisherWithProducer usa un productor ya construido (tests con sarama/mocks).
func NewMovementPublisherWithProducer(producer sarama.SyncProducer, topic string, log zerolog.Logger) *MovementPublisher {
	return &MovementPublisher{producer: producer, topic: topic, log: log}
}

// PublishMovement envía el evento; el error se devuelve al motor, que solo lo registra.
func (p *MovementPublisher) PublishMovement(ctx context.Context, event inventory.MovementRecordedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	eventID := uuid.NewString()
	body, err := json.Marshal(MovementRecordedMessage{
		EventID:          eventID,
		MovementID:       event.Movement.ID,
		ProductID:        event.Movement.ProductID,
		Type:             event.Movement.Type,
		Quantity:         event.Movement.Quantity,
		PreviousQuantity: event.PreviousQuantity,
		NewQuantity:      event.NewQuantity,
		Date:             event.Movement.Date,
	})
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.Movement.ProductID, 10)),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(EventTypeMovementRecorded)},
			{Key: []byte("event-id"), Value: []byte(eventID)},
			{Key: []byte("timestamp"), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publicar en %s: %w", p.topic, err)
	}
	p.log.Debug().
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Int64("movement_id", event.Movement.ID).
		Msg("evento de movimiento publicado")
	return nil
}

// Close cierra el productor.
func (p *MovementPublisher) Close() error {
	return p.producer.Close()
}
