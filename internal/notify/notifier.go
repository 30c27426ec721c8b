// Package notify broadcasts entity-change notifications so read-only
// views can refresh without polling. Delivery is best effort: a failed
// publish is logged and never fails the originating operation.
package notify

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Channel carries all change notifications, keyed by entity-type payload.
const Channel = "nhw.changes"

// Entity-type tags published on mutation.
const (
	EntityProducts     = "products"
	EntityCustomers    = "customers"
	EntitySalesPersons = "sales_persons"
	EntityBills        = "bills"
	EntityStock        = "stock"
	EntitySettings     = "settings"
)

// Notifier publishes change notifications for an entity type.
type Notifier interface {
	Changed(ctx context.Context, entity string)
}

// RedisNotifier publishes notifications on a redis channel.
type RedisNotifier struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisNotifier constructs a RedisNotifier.
func NewRedisNotifier(client *redis.Client, logger *slog.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

// Changed publishes the entity tag. Errors are logged, not returned.
func (n *RedisNotifier) Changed(ctx context.Context, entity string) {
	if n == nil || n.client == nil {
		return
	}
	if err := n.client.Publish(ctx, Channel, entity).Err(); err != nil && n.logger != nil {
		n.logger.Warn("publish change notification", slog.String("entity", entity), slog.Any("error", err))
	}
}

// Listen subscribes to change notifications and invokes fn per message
// until the context is cancelled. Used by external read-only views.
func Listen(ctx context.Context, client *redis.Client, fn func(entity string)) {
	pubsub := client.Subscribe(ctx, Channel)
	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fn(msg.Payload)
			}
		}
	}()
}

// Noop is a Notifier that discards notifications.
type Noop struct{}

// Changed implements Notifier.
func (Noop) Changed(context.Context, string) {}
