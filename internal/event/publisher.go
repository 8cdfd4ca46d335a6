package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/coursequiz/config"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const ExchangeName = "coursequiz.events"

const (
	TypeQuizGenerated    = "quiz.generated"
	TypeQuizSubmitted    = "quiz.submitted"
	TypePaymentCreated   = "payment.created"
	TypePaymentConfirmed = "payment.confirmed"
)

type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

func New(eventType string, data map[string]any) Event {
	return Event{ID: uuid.NewString(), Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
}

// Publisher emits domain events. Publishing is best effort: callers log the
// error and carry on.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

type RabbitPublisher struct {
	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
	enabled bool
}

func NewPublisher(cfg *config.Config) (Publisher, error) {
	if cfg.RabbitMQ.URI == "" {
		log.Warn().Msg("RABBITMQ_URI is empty, event publishing is disabled")
		return &RabbitPublisher{enabled: false}, nil
	}

	conn, err := amqp091.Dial(cfg.RabbitMQ.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		ExchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitPublisher{conn: conn, channel: channel, enabled: true}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, ev Event) error {
	if !p.enabled {
		log.Debug().Str("event", ev.Type).Msg("Event publishing is disabled, skipping event")
		return nil
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(
		pubCtx,
		ExchangeName, // exchange
		ev.Type,      // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    ev.ID,
			Timestamp:    ev.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	log.Debug().Str("event", ev.Type).Str("eventID", ev.ID).Msg("Published event")
	return nil
}

func (p *RabbitPublisher) Close() error {
	if !p.enabled {
		return nil
	}
	if err := p.channel.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close RabbitMQ channel")
	}
	return p.conn.Close()
}
