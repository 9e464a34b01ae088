package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const maxBackoff = 30 * time.Second

// HandlerFunc processes one decoded event.
type HandlerFunc func(ctx context.Context, event TicketBookedEvent) error

// AuditHandler writes every booking to the log as an audit line.
func AuditHandler(log *zap.Logger) HandlerFunc {
	log = log.With(zap.String("consumer", "ticket_audit"))
	return func(_ context.Context, ev TicketBookedEvent) error {
		log.Info("Ticket booked",
			zap.Int64("ticket_id", ev.TicketID),
			zap.String("ticket_code", ev.TicketCode),
			zap.Int64("user_id", ev.UserID),
			zap.Int64("show_id", ev.ShowID),
			zap.Strings("seats", ev.SeatNumbers),
			zap.Float64("total_price", ev.TotalPrice),
			zap.Time("booked_at", ev.BookedAt),
		)
		return nil
	}
}

// RunConsumer consumes queue until ctx is cancelled, reconnecting with backoff.
func RunConsumer(ctx context.Context, url, queue string, handle HandlerFunc, log *zap.Logger) error {
	log = log.With(zap.String("queue", queue))
	backoff := time.Second

	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("Consumer dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleepCtx(ctx, backoff) {
				return nil
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = time.Second

		err = consume(ctx, conn, queue, handle, log)
		conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		log.Warn("Consumer loop ended, reconnecting", zap.Error(err))
		if !sleepCtx(ctx, 2*time.Second) {
			return nil
		}
	}
}

func consume(ctx context.Context, conn *amqp.Connection, queue string, handle HandlerFunc, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("Set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	log.Info("Consumer started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := HandleDelivery(ctx, d.Body, handle); err != nil {
				log.Error("Handle message failed", zap.Error(err))
				// drop without requeue
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}

// HandleDelivery decodes body and passes it to handle.
func HandleDelivery(ctx context.Context, body []byte, handle HandlerFunc) error {
	var ev TicketBookedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}
	if ev.TicketID == 0 {
		return errors.New("event without ticket_id")
	}
	return handle(ctx, ev)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
