package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-restaurant-pos/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange is the topic exchange order events are published to.
const Exchange = "restaurant_orders"

const (
	defaultDialTimeout = 2 * time.Second
	defaultRetryDelay  = 10 * time.Second
)

// ErrBrokerDown is returned without dialling while a failed connection
// attempt is still inside its retry delay.
var ErrBrokerDown = errors.New("amqp: broker unavailable")

// Publisher sends order events to RabbitMQ. The connection is opened on the
// first publish and reopened after it drops. A dial is bounded by dialTimeout
// and a failed one is not retried before retryDelay has passed, so an
// unreachable broker costs a request at most one short dial.
type Publisher struct {
	url         string
	dialTimeout time.Duration
	retryDelay  time.Duration

	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	retryAt time.Time
}

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url, dialTimeout: defaultDialTimeout, retryDelay: defaultRetryDelay}
}

// channel must be called with mu held.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.closeLocked()
	if time.Now().Before(p.retryAt) {
		return nil, ErrBrokerDown
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		p.retryAt = time.Now().Add(p.retryDelay)
		return nil, fmt.Errorf("amqp: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp: channel: %w", err)
	}
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp: declare exchange: %w", err)
	}
	p.conn, p.ch = conn, ch
	logger.Info("amqp: connected", "exchange", Exchange)
	return ch, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	ch, err := p.channel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = ch.PublishWithContext(ctx, Exchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         data,
		Timestamp:    time.Now(),
	})
	if err != nil {
		p.closeLocked()
		return fmt.Errorf("amqp: publish %s: %w", routingKey, err)
	}
	return nil
}

func (p *Publisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}
