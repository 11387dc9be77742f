package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"

	"shutterbook/config"
)

const defaultHealthIntervalSeconds = 60

// HealthStatus is the latest probe of the service's external dependencies,
// one field per role so a half-broken Redis setup is visible at a glance.
type HealthStatus struct {
	Mongo         bool      `json:"mongo"`
	RulesCache    bool      `json:"rulesCache"`
	QuoteCache    bool      `json:"quoteCache"`
	ReminderQueue bool      `json:"reminderQueue"`
	CheckedAt     time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the most recent health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// healthInterval resolves the probe interval from configuration.
func healthInterval() time.Duration {
	seconds := config.AppConfig.HealthCheckSeconds
	if seconds <= 0 {
		seconds = defaultHealthIntervalSeconds
	}
	return time.Duration(seconds) * time.Second
}

// StartHealthMonitor probes Mongo and each Redis role on a fixed interval and
// keeps an in-memory snapshot for the health endpoint. The reminder queue is
// probed through its own ping client because asynq owns the queue's real
// connections.
func StartHealthMonitor(rulesCache, quoteCache, reminderQueue *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(healthInterval())
		defer ticker.Stop()

		ctx := context.Background()
		for range ticker.C {
			snapshot := HealthStatus{
				Mongo:         mongoClient.Ping(ctx, nil) == nil,
				RulesCache:    rulesCache.Ping(ctx).Err() == nil,
				QuoteCache:    quoteCache.Ping(ctx).Err() == nil,
				ReminderQueue: reminderQueue.Ping(ctx).Err() == nil,
				CheckedAt:     time.Now(),
			}
			healthMu.Lock()
			currentHealth = snapshot
			healthMu.Unlock()
		}
	}()
}
