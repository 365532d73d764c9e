package booking

import (
	"context"
	"time"

	"slotwise/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// HoldStore places short-lived holds on slots in Redis so two clients racing
// between "query" and "confirm" surface early. Advisory only: the Mongo
// transaction remains the authoritative conflict gate.
type HoldStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewHoldStore builds a hold store with the given TTL (defaults to 5 minutes).
func NewHoldStore(client *redis.Client, ttl time.Duration) *HoldStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &HoldStore{Client: client, TTL: ttl}
}

// Acquire attempts to take the hold; returns false when someone else holds it.
func (h *HoldStore) Acquire(ctx context.Context, key string) (bool, error) {
	return h.Client.SetNX(ctx, key, "1", h.TTL).Result()
}

// Release drops the hold. Best effort.
func (h *HoldStore) Release(ctx context.Context, key string) {
	if err := h.Client.Del(ctx, key).Err(); err != nil {
		utils.GetLogger().Warn("failed to release slot hold",
			zap.String("key", key), zap.Error(err))
	}
}
