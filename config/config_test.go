package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Scheduler.Interval)
	assert.True(t, cfg.Billing.EarlyPaymentDiscountRate.Equal(decimal.RequireFromString("0.02")))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("SCHEDULER_INTERVAL", "10m")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("EARLY_PAYMENT_DISCOUNT_RATE", "0.05")

	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Scheduler.Interval)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.True(t, cfg.Billing.EarlyPaymentDiscountRate.Equal(decimal.RequireFromString("0.05")))
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name:  "non-numeric port",
			key:   "SERVER_PORT",
			value: "http",
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, 8080, cfg.Server.Port) },
		},
		{
			name:  "bad duration",
			key:   "SCHEDULER_LOCK_TTL",
			value: "soon",
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, 5*time.Minute, cfg.Scheduler.LockTTL) },
		},
		{
			name:  "negative discount",
			key:   "EARLY_PAYMENT_DISCOUNT_RATE",
			value: "-0.1",
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Billing.EarlyPaymentDiscountRate.Equal(decimal.RequireFromString("0.02")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			tt.check(t, Load())
		})
	}
}
