package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "missing secret",
			cfg:     Config{Timezone: "UTC"},
			wantErr: errMissingSecret,
		},
		{
			name:    "short secret",
			cfg:     Config{JWTSecret: "too-short", Timezone: "UTC"},
			wantErr: errShortSecret,
		},
		{
			name: "ok",
			cfg:  Config{JWTSecret: "0123456789abcdef0123456789abcdef", Timezone: "Europe/Istanbul"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.cfg.Validate()
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_BadTimezone(t *testing.T) {
	cfg := Config{JWTSecret: "0123456789abcdef0123456789abcdef", Timezone: "Mars/Olympus"}
	assert.Error(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PANEL_TIMEZONE", "UTC")
	t.Setenv("KAFKA_BROKER", "kafka:9092")

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "kafka:9092", cfg.KafkaBroker)
	assert.Equal(t, "orders.placed", cfg.KafkaOrdersTopic)
	assert.Equal(t, "UTC", cfg.Location().String())
}
