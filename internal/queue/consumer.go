package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-console/internal/config"
)

// RunAuditConsumer consumes the reservation queue and appends one line per
// event to cfg.AuditLogPath.  It reconnects with backoff until ctx is done
// and returns nil on shutdown.
func RunAuditConsumer(ctx context.Context, cfg config.QueueConfig) error {
	log := logrus.WithField("component", "audit-consumer")
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return nil
		}
		conn, err := dial(cfg.URL, cfg.DialTimeout)
		if err != nil {
			log.WithError(err).Warnf("dial failed; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return nil
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, cfg)
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		log.WithError(err).Warn("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, cfg config.QueueConfig) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logrus.WithError(err).Warn("audit-consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := appendEvent(cfg.AuditLogPath, d.Body); err != nil {
				logrus.WithError(err).Warn("audit-consumer: handle message failed")
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func appendEvent(path string, body []byte) error {
	var ev ReservationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(formatLine(ev)); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// formatLine renders one audit log line, newline included.
func formatLine(ev ReservationEvent) string {
	seats := "[]"
	if len(ev.Seats) > 0 {
		seats = "[" + strings.Join(ev.Seats, ",") + "]"
	}
	var what string
	switch ev.Type {
	case TypeReservationSubmitted:
		what = "Reservation submitted"
	case TypeReservationStateChanged:
		what = "Reservation " + ev.State
	default:
		what = ev.Type
	}
	return fmt.Sprintf("[%s] %s | reservation_id=%d | showtime_id=%d | movie=%q | room=%q | customer=%q | state=%s | seats=%s\n",
		ev.OccurredAt, what, ev.ReservationID, ev.ShowtimeID, ev.MovieTitle, ev.RoomName, ev.CustomerEmail, ev.State, seats)
}
