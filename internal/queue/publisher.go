package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-console/internal/config"
)

// Publisher sends ReservationEvents to the configured queue.  A disabled
// Publisher accepts every event and drops it.
type Publisher struct {
	cfg  config.QueueConfig
	dial func(url string) (*amqp.Connection, error)
}

func NewPublisher(cfg config.QueueConfig) *Publisher {
	return &Publisher{cfg: cfg, dial: func(url string) (*amqp.Connection, error) { return dial(url, cfg.DialTimeout) }}
}

// dial bounds both the TCP connect and the AMQP handshake by timeout.
func dial(url string, timeout time.Duration) (*amqp.Connection, error) {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// Publish opens a short-lived connection, declares the durable queue and
// sends ev as a persistent JSON message.  Errors are logged and returned so
// callers can ignore them without interrupting the request.
func (p *Publisher) Publish(ctx context.Context, ev ReservationEvent) error {
	if p == nil || !p.cfg.Enabled {
		return nil
	}
	ev = ev.Stamp(time.Now())
	log := logrus.WithFields(logrus.Fields{"event": ev.Type, "reservation_id": ev.ReservationID})

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	conn, err := p.dial(p.cfg.URL)
	if err != nil {
		log.WithError(err).Warn("rabbitmq dial failed")
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Warn("rabbitmq channel open failed")
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.cfg.Queue, true, false, false, false, nil); err != nil {
		log.WithError(err).Warn("rabbitmq queue declare failed")
		return fmt.Errorf("declare queue: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		Timestamp:     time.Now().UTC(),
		Type:          ev.Type,
		CorrelationId: ev.CorrelationID,
		Body:          body,
	}
	if err := ch.PublishWithContext(ctx, "", p.cfg.Queue, false, false, msg); err != nil {
		log.WithError(err).Warn("rabbitmq publish failed")
		return fmt.Errorf("publish: %w", err)
	}
	log.Debug("event published")
	return nil
}
