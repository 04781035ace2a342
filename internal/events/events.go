package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	OrderPlaced        = "order_placed"
	OrderStatusChanged = "order_status_changed"
	OrderDeleted       = "order_deleted"
)

type OrderEvent struct {
	EventID       string          `json:"event_id"`
	Type          string          `json:"type"`
	OrderID       uint            `json:"order_id"`
	OID           string          `json:"oid,omitempty"`
	UserID        uint            `json:"user_id,omitempty"`
	Status        string          `json:"status,omitempty"`
	TotalProducts int             `json:"total_products,omitempty"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func NewOrderEvent(kind string) OrderEvent {
	return OrderEvent{
		EventID:    uuid.NewString(),
		Type:       kind,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	PublishOrder(ctx context.Context, e OrderEvent) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// PublishOrder keys messages by Key so one order's events stay on one
// partition.
func (p *KafkaPublisher) PublishOrder(ctx context.Context, e OrderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	value, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Key()),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Key is the partition key: the internal order id, which every order
// event carries.
func (e OrderEvent) Key() string {
	if e.OrderID != 0 {
		return strconv.FormatUint(uint64(e.OrderID), 10)
	}
	return e.EventID
}

// Nop drops events. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishOrder(context.Context, OrderEvent) error { return nil }
func (Nop) Close() error                                   { return nil }
