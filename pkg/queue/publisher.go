package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"showtime-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends booking events to the broker.
type Publisher interface {
	PublishTicketBooked(ctx context.Context, event TicketBookedEvent) error
	Close() error
}

type rabbitPublisher struct {
	url   string
	queue string
	log   *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitPublisher dials the broker and declares the durable queue.
func NewRabbitPublisher(url, queue string, log *zap.Logger) (Publisher, error) {
	p := &rabbitPublisher{
		url:   url,
		queue: queue,
		log:   log.With(zap.String("publisher", "rabbitmq")),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *rabbitPublisher) connectLocked() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	p.conn = conn
	p.ch = ch
	return nil
}

func (p *rabbitPublisher) PublishTicketBooked(ctx context.Context, event TicketBookedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// reconnect lazily after a broker restart
	if p.ch == nil || p.ch.IsClosed() {
		if p.conn != nil {
			p.conn.Close()
		}
		if err := p.connectLocked(); err != nil {
			return err
		}
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    utils.GenerateUUIDString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", p.queue, err)
	}

	p.log.Debug("Event published",
		zap.String("queue", p.queue),
		zap.Int64("ticket_id", event.TicketID))
	return nil
}

func (p *rabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishTicketBooked(context.Context, TicketBookedEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
