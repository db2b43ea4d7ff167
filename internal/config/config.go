package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Subnet simulation parameters.
	EmissionPerTempo      float64
	ChallengeHistoryLimit int
	SeedRegistry          bool

	// Kafka result publishing. KafkaEnabled defaults to true when brokers
	// are set explicitly.
	KafkaBrokers      []string
	KafkaResultsTopic string
	KafkaEnabled      bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	emission, err := parseEmissionPerTempo()
	if err != nil {
		return nil, err
	}

	historyLimit, err := parseHistoryLimit()
	if err != nil {
		return nil, err
	}

	brokersSet := os.Getenv("KAFKA_BROKERS") != ""
	kafkaEnabled := brokersSet
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		EmissionPerTempo:      emission,
		ChallengeHistoryLimit: historyLimit,
		SeedRegistry:          envOrDefault("SEED_REGISTRY", "true") == "true",

		KafkaBrokers:      parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaResultsTopic: envOrDefault("KAFKA_RESULTS_TOPIC", "challenge-results"),
		KafkaEnabled:      kafkaEnabled,
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaResultsTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_RESULTS_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseBrokers splits a comma-separated broker list, trimming whitespace and
// dropping empty entries.
func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if b := strings.TrimSpace(p); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseShutdownTimeout() (time.Duration, error) {
	s := envOrDefault("SHUTDOWN_TIMEOUT", "10s")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	return d, nil
}

func parseEmissionPerTempo() (float64, error) {
	s := envOrDefault("EMISSION_PER_TEMPO", "1.0")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, errors.New("invalid EMISSION_PER_TEMPO")
	}
	return v, nil
}

func parseHistoryLimit() (int, error) {
	s := envOrDefault("CHALLENGE_HISTORY_LIMIT", "100")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 10_000 {
		return 0, errors.New("invalid CHALLENGE_HISTORY_LIMIT")
	}
	return n, nil
}
