package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisNotifierPublishAndListen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan string, 4)
	Listen(ctx, client, func(entity string) { received <- entity })

	// Give the subscriber a moment to register before publishing.
	time.Sleep(50 * time.Millisecond)

	n := NewRedisNotifier(client, nil)
	n.Changed(ctx, EntityBills)
	n.Changed(ctx, EntityStock)

	require.Equal(t, EntityBills, <-received)
	require.Equal(t, EntityStock, <-received)
}

func TestNoopNotifier(t *testing.T) {
	var n Notifier = Noop{}
	n.Changed(context.Background(), EntityProducts)
}
