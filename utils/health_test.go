package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shutterbook/config"
)

func TestHealthInterval(t *testing.T) {
	original := config.AppConfig.HealthCheckSeconds
	defer func() { config.AppConfig.HealthCheckSeconds = original }()

	config.AppConfig.HealthCheckSeconds = 15
	assert.Equal(t, 15*time.Second, healthInterval())

	// Zero and negative values fall back to the default.
	config.AppConfig.HealthCheckSeconds = 0
	assert.Equal(t, 60*time.Second, healthInterval())

	config.AppConfig.HealthCheckSeconds = -5
	assert.Equal(t, 60*time.Second, healthInterval())
}

func TestGetHealthStatusSnapshot(t *testing.T) {
	healthMu.Lock()
	original := currentHealth
	currentHealth = HealthStatus{
		Mongo:         true,
		RulesCache:    true,
		QuoteCache:    false,
		ReminderQueue: true,
		CheckedAt:     time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	healthMu.Unlock()
	defer func() {
		healthMu.Lock()
		currentHealth = original
		healthMu.Unlock()
	}()

	got := GetHealthStatus()
	assert.True(t, got.Mongo)
	assert.True(t, got.RulesCache)
	assert.False(t, got.QuoteCache)
	assert.True(t, got.ReminderQueue)
}
