// Package config builds process configuration from environment variables so
// main stays lean. Every knob has a development-friendly default.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server process needs at boot.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// PostgresURL is the backing-store connection string. Empty selects the
	// in-memory stores (development and tests only).
	PostgresURL string

	// RedisURL enables the role read-through cache when set.
	RedisURL string
	// RoleCacheTTL bounds how long a cached role may serve decisions.
	RoleCacheTTL time.Duration

	// KafkaBrokers enables audit event publication when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// ProvisionDomain is the single email domain eligible for identity
	// auto-provisioning; empty disables provisioning.
	ProvisionDomain string
	// ProvisionTemplatePath points at the JSON provisioning template.
	ProvisionTemplatePath string

	// DecisionTimeout bounds one access decision end to end.
	DecisionTimeout time.Duration

	// Readiness knobs.
	BootstrapAttempts int
	BootstrapBackoff  time.Duration
	IdleThreshold     time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:                  envString("DATASET_ACCESS_ADDR", ":8080"),
		PostgresURL:           os.Getenv("POSTGRES_URL"),
		RedisURL:              os.Getenv("REDIS_URL"),
		RoleCacheTTL:          envDuration("ROLE_CACHE_TTL", 30*time.Second),
		KafkaBrokers:          envList("KAFKA_BROKERS"),
		KafkaTopic:            envString("KAFKA_AUDIT_TOPIC", "dataset-access-audit"),
		ProvisionDomain:       os.Getenv("PROVISION_DOMAIN"),
		ProvisionTemplatePath: os.Getenv("PROVISION_TEMPLATE_PATH"),
		DecisionTimeout:       envDuration("DECISION_TIMEOUT", 10*time.Second),
		BootstrapAttempts:     envInt("READINESS_BOOTSTRAP_ATTEMPTS", 10),
		BootstrapBackoff:      envDuration("READINESS_BOOTSTRAP_BACKOFF", time.Second),
		IdleThreshold:         envDuration("READINESS_IDLE_THRESHOLD", 5*time.Second),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
