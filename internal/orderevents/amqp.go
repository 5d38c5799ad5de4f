package orderevents

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"shopswift/internal/logging"
)

// DefaultQueue is consumed by fulfilment.
const DefaultQueue = "orders"

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher sends each event as a persistent JSON message to a durable
// queue on the default exchange.
type AMQPPublisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     channel
	queue  string
	logger *zap.Logger
}

// DialAMQP connects to uri and declares queue.
func DialAMQP(uri, queue string, logger *zap.Logger) (*AMQPPublisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	p := newAMQPPublisher(ch, q.Name, logger)
	p.conn = conn
	p.logger.Info("order events enabled", zap.String("queue", q.Name))
	return p, nil
}

func newAMQPPublisher(ch channel, queue string, logger *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		ch:     ch,
		queue:  queue,
		logger: logging.OrNop(logger).Named("orderevents"),
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev OrderPlaced) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.OrderNumber,
			Timestamp:    ev.PlacedAt,
			Type:         "order.placed",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish order %s: %w", ev.OrderNumber, err)
	}
	p.logger.Debug("order event published", zap.String("order", ev.OrderNumber))
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
