package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"shutterbook/config"
)

var (
	// CacheClient is the generic cache client, used for rule-set documents.
	CacheClient *redis.Client
	// QuoteCacheClient is the dedicated client for short-lived quote sessions.
	QuoteCacheClient *redis.Client
	// ReminderPingClient points at the reminder queue's database. asynq owns
	// the queue's real connections; this client exists only for health probes.
	ReminderPingClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitQuoteCache initializes the Redis client for quote session storage.
func InitQuoteCache() {
	QuoteCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQuoteDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := QuoteCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Quote Cache): %v", err)
	}
}

// GetQuoteCacheClient returns the Redis client for quote sessions.
func GetQuoteCacheClient() *redis.Client {
	if QuoteCacheClient == nil {
		InitQuoteCache()
	}
	return QuoteCacheClient
}

// InitReminderPing initializes the health-probe client for the reminder queue.
func InitReminderPing() {
	ReminderPingClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ReminderPingClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Reminder Queue): %v", err)
	}
}

// GetReminderPingClient returns the reminder queue's health-probe client.
func GetReminderPingClient() *redis.Client {
	if ReminderPingClient == nil {
		InitReminderPing()
	}
	return ReminderPingClient
}

// InitRedis initializes all Redis clients eagerly at startup.
func InitRedis() {
	InitCache()
	InitQuoteCache()
	InitReminderPing()
}
