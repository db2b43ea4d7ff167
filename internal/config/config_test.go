package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 1.0, cfg.EmissionPerTempo)
	assert.Equal(t, 100, cfg.ChallengeHistoryLimit)
	assert.True(t, cfg.SeedRegistry)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "challenge-results", cfg.KafkaResultsTopic)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("EMISSION_PER_TEMPO", "2.5")
	t.Setenv("CHALLENGE_HISTORY_LIMIT", "250")
	t.Setenv("SEED_REGISTRY", "false")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_RESULTS_TOPIC", "custom-results")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2.5, cfg.EmissionPerTempo)
	assert.Equal(t, 250, cfg.ChallengeHistoryLimit)
	assert.False(t, cfg.SeedRegistry)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-results", cfg.KafkaResultsTopic)
	assert.True(t, cfg.KafkaEnabled)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidEmission(t *testing.T) {
	t.Setenv("EMISSION_PER_TEMPO", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMISSION_PER_TEMPO")
}

func TestLoad_InvalidHistoryLimit(t *testing.T) {
	t.Setenv("CHALLENGE_HISTORY_LIMIT", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHALLENGE_HISTORY_LIMIT")
}

func TestLoad_HistoryLimitTooLarge(t *testing.T) {
	t.Setenv("CHALLENGE_HISTORY_LIMIT", "99999")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHALLENGE_HISTORY_LIMIT")
}

func TestLoad_BrokersImplyKafkaEnabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.KafkaEnabled)
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}
