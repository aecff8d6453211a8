// Package notify delivers order events to the kitchen WebSocket feed and,
// when AMQP_URL is set, to a RabbitMQ topic exchange.
package notify

import (
	"context"
	"strings"

	"go-restaurant-pos/logger"
	"go-restaurant-pos/metrics"
	"go-restaurant-pos/models"
)

// Notifier is what the order and billing services report to.
type Notifier interface {
	OrderPlaced(ctx context.Context, order models.Order)
	StatusChanged(ctx context.Context, order models.Order)
	OrderCompleted(ctx context.Context, order models.Order, bill models.Bill)
}

// Broadcaster is the WebSocket side of a Fanout.
type Broadcaster interface {
	Broadcast(n models.Notification) error
}

// EventPublisher is the broker side of a Fanout.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body any) error
}

// Fanout sends every event to the hub and the publisher. Either may be nil.
// Delivery failures are logged and never fail the request that caused them.
type Fanout struct {
	hub Broadcaster
	pub EventPublisher
}

func NewFanout(hub Broadcaster, pub EventPublisher) *Fanout {
	return &Fanout{hub: hub, pub: pub}
}

// RoutingKey for a status change, e.g. order.status.preparing.
func RoutingKey(status models.OrderStatus) string {
	return "order.status." + strings.ToLower(string(status))
}

func (f *Fanout) OrderPlaced(ctx context.Context, order models.Order) {
	f.send(ctx, models.Notification{Event: models.EventNewOrder, Payload: order}, "order.placed")
}

func (f *Fanout) StatusChanged(ctx context.Context, order models.Order) {
	f.send(ctx, models.Notification{Event: models.EventPrepareStatus, Payload: order}, RoutingKey(order.Status))
}

func (f *Fanout) OrderCompleted(ctx context.Context, order models.Order, bill models.Bill) {
	payload := map[string]any{"order": order, "bill": bill}
	f.send(ctx, models.Notification{Event: models.EventOrderCompleted, Payload: payload}, RoutingKey(models.StatusCompleted))
}

func (f *Fanout) send(ctx context.Context, n models.Notification, routingKey string) {
	log := logger.FromCtx(ctx)
	if f.hub != nil {
		if err := f.hub.Broadcast(n); err != nil {
			metrics.EventsPublished.WithLabelValues("ws", "error").Inc()
			log.Warn("notify: websocket broadcast failed", "event", n.Event, "error", err)
		} else {
			metrics.EventsPublished.WithLabelValues("ws", "ok").Inc()
		}
	}
	if f.pub != nil {
		if err := f.pub.Publish(context.WithoutCancel(ctx), routingKey, n); err != nil {
			metrics.EventsPublished.WithLabelValues("amqp", "error").Inc()
			log.Warn("notify: amqp publish failed", "routing_key", routingKey, "error", err)
		} else {
			metrics.EventsPublished.WithLabelValues("amqp", "ok").Inc()
		}
	}
}
