package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQ publishes snapshot requests to the downstream analysis worker.
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	err = ch.QueueBind(
		q.Name,
		cfg.RoutingKey,
		cfg.Exchange,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

// SnapshotMessage asks the analysis worker to build insights for one app
// from the reviews a run just persisted.
type SnapshotMessage struct {
	SnapshotID  string    `json:"snapshot_id"`
	AppID       int64     `json:"app_id"`
	RunID       string    `json:"run_id"`
	RequestedAt time.Time `json:"requested_at"`
}

func (r *RabbitMQ) EnqueueSnapshot(ctx context.Context, appID int64, runID string) (string, error) {
	msg := SnapshotMessage{
		SnapshotID:  uuid.NewString(),
		AppID:       appID,
		RunID:       runID,
		RequestedAt: time.Now().UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return "", fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("enqueued snapshot",
		"snapshot_id", msg.SnapshotID,
		"app_id", appID,
		"run_id", runID,
	)

	return msg.SnapshotID, nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// Noop satisfies the orchestrator's enqueuer without a broker, for tests
// and local runs.
type Noop struct{}

func (Noop) EnqueueSnapshot(_ context.Context, _ int64, _ string) (string, error) {
	return uuid.NewString(), nil
}

func (Noop) Close() error { return nil }
