package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/pequenospassos/storefront/internal/kafka"
	"github.com/pequenospassos/storefront/internal/orders"
	"github.com/pequenospassos/storefront/internal/redisx"
)

// CacheRefresher keeps the Redis read caches in step with order events: it
// refreshes the per-order status cache and drops the dashboard summary so
// the next read recomputes it. Caches only; the ledger stays authoritative.
type CacheRefresher struct {
	Redis       *redis.Client
	Log         *zap.Logger
	ServiceName string
}

// HandleMessage is wired as the Kafka consumer handler for both order topics.
func (c *CacheRefresher) HandleMessage(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// malformed event: commit and move on, retrying cannot fix it
		c.Log.Warn("dropping malformed event", zap.Error(err))
		return nil
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, c.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, c.Redis, dkey); exists {
		return nil
	}

	switch env.EventType {
	case orders.EventOrderCreated:
		p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
		if err != nil {
			c.Log.Warn("dropping event with bad payload", zap.String("type", env.EventType), zap.Error(err))
			return nil
		}
		if err := c.setStatus(ctx, p.OrderID, orders.StatusPending); err != nil {
			return err
		}
	case orders.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			c.Log.Warn("dropping event with bad payload", zap.String("type", env.EventType), zap.Error(err))
			return nil
		}
		if err := c.setStatus(ctx, p.OrderID, p.Status); err != nil {
			return err
		}
	default:
		return nil
	}

	// any order movement can change the approved rollup
	if err := c.Redis.Del(ctx, redisx.KeyDashboard).Err(); err != nil {
		return err
	}
	return c.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
}

func (c *CacheRefresher) setStatus(ctx context.Context, orderID string, status orders.Status) error {
	body, _ := json.Marshal(map[string]any{"status": status})
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	return c.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
}
