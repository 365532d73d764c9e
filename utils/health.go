package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of the two backing stores: the booking
// database and the slot-hold cache.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	HoldCache bool      `json:"holdCache"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func setHealthStatus(hs HealthStatus) {
	healthMu.Lock()
	currentHealth = hs
	healthMu.Unlock()
}

// StartHealthMonitor pings Mongo and the hold cache periodically and updates
// the in-memory snapshot served on /health.
func StartHealthMonitor(holdCache *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			setHealthStatus(HealthStatus{
				Mongo:     mongoClient.Ping(ctx, nil) == nil,
				HoldCache: holdCache.Ping(ctx).Err() == nil,
				CheckedAt: time.Now(),
			})
		}
	}()
}
