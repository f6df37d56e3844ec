// Package events publishes assessment lifecycle events to a RabbitMQ topic exchange.
// #INTEGRATION_POINT: Downstream consumers bind queues on routing keys such as "assessment.*"
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Event types, used as routing keys
const (
	AssessmentCompleted = "assessment.completed"
	AssessmentCancelled = "assessment.cancelled"
)

// Publisher sends domain events
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
	Close()
}

// Envelope is the JSON body of every published message
type Envelope struct {
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// AssessmentEvent is the payload of assessment lifecycle events
type AssessmentEvent struct {
	AssessmentID    string   `json:"assessment_id"`
	BuildingID      string   `json:"building_id"`
	BuildingType    string   `json:"building_type"`
	UserID          string   `json:"user_id"`
	Status          string   `json:"status"`
	TotalScore      *float64 `json:"total_score,omitempty"`
	RiskLevel       string   `json:"risk_level,omitempty"`
	CriticalIssues  int      `json:"critical_issues"`
	AnsweredCount   int      `json:"answered_count"`
	QuestionCount   int      `json:"question_count"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// channel is the subset of *amqp.Channel the publisher needs
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a topic exchange
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
	log      *zap.Logger
	now      func() time.Time
}

// NewAMQPPublisher dials the broker and declares a durable topic exchange
func NewAMQPPublisher(amqpURL, exchange string, log *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return newAMQPPublisher(conn, ch, exchange, log), nil
}

func newAMQPPublisher(conn *amqp.Connection, ch channel, exchange string, log *zap.Logger) *AMQPPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &AMQPPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		log:      log,
		now:      time.Now,
	}
}

// Publish marshals the payload into an Envelope and routes it by event type
func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(Envelope{
		Type:       eventType,
		Payload:    payload,
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    p.now().UTC(),
			Type:         eventType,
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("event publish failed", zap.String("type", eventType), zap.Error(err))
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	p.log.Debug("event published", zap.String("type", eventType), zap.String("exchange", p.exchange))
	return nil
}

// Close releases the channel and the connection
func (p *AMQPPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every event
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func (nopPublisher) Close() {}

var _ Publisher = (*AMQPPublisher)(nil)
