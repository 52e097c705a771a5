package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sentra/internal/services/risk"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetFloatEnv returns a float environment variable or a default value.
func GetFloatEnv(key string, defaultVal float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// KafkaConfig holds the streaming ingestion settings. Ingestion over Kafka
// is optional; an empty broker list disables the consumer.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
}

// LoadKafkaConfig reads the Kafka settings from the environment.
func LoadKafkaConfig() KafkaConfig {
	brokers := GetEnv("KAFKA_BROKERS", "")
	cfg := KafkaConfig{
		Topic:         GetEnv("KAFKA_TOPIC", "sentra.transactions"),
		ConsumerGroup: GetEnv("KAFKA_CONSUMER_GROUP", "sentra-ingest"),
	}
	if brokers != "" {
		cfg.Brokers = strings.Split(brokers, ",")
	}
	return cfg
}

// SourceConfig configures one external evidence source. A source with an
// empty BaseURL is considered unconfigured and is skipped by the aggregator.
type SourceConfig struct {
	BaseURL string
	APIKey  string
}

// EvidenceConfig holds the settings for every external evidence source plus
// the AI analysis endpoint.
type EvidenceConfig struct {
	Registry  SourceConfig
	News      SourceConfig
	Sanctions SourceConfig
	AI        SourceConfig
	AIModel   string
	// SourceTimeout bounds each individual source call; on expiry the
	// pipeline proceeds with whatever evidence was collected.
	SourceTimeout time.Duration
}

// LoadEvidenceConfig reads evidence-source settings from the environment.
func LoadEvidenceConfig() EvidenceConfig {
	return EvidenceConfig{
		Registry: SourceConfig{
			BaseURL: GetEnv("REGISTRY_API_URL", ""),
			APIKey:  GetEnv("REGISTRY_API_KEY", ""),
		},
		News: SourceConfig{
			BaseURL: GetEnv("NEWS_API_URL", ""),
			APIKey:  GetEnv("NEWS_API_KEY", ""),
		},
		Sanctions: SourceConfig{
			BaseURL: GetEnv("SANCTIONS_API_URL", ""),
			APIKey:  GetEnv("SANCTIONS_API_KEY", ""),
		},
		AI: SourceConfig{
			BaseURL: GetEnv("AI_API_URL", "https://api.openai.com/v1"),
			APIKey:  GetEnv("AI_API_KEY", ""),
		},
		AIModel:       GetEnv("AI_MODEL", "gpt-4o"),
		SourceTimeout: GetDurationEnv("EVIDENCE_SOURCE_TIMEOUT", 15*time.Second),
	}
}

// LoadRiskConfig builds the scoring thresholds from the environment on top
// of the engine defaults. Only the operational tunables are exposed; type
// priors and source reliability stay code-defined.
func LoadRiskConfig() risk.Config {
	cfg := risk.DefaultConfig()
	cfg.CompanionGain = GetFloatEnv("RISK_COMPANION_GAIN", cfg.CompanionGain)
	cfg.VelocityThreshold = GetIntEnv("RISK_VELOCITY_THRESHOLD", cfg.VelocityThreshold)
	cfg.AsymmetryThreshold = GetFloatEnv("RISK_ASYMMETRY_THRESHOLD", cfg.AsymmetryThreshold)
	cfg.ConcentrationThreshold = GetFloatEnv("RISK_CONCENTRATION_THRESHOLD", cfg.ConcentrationThreshold)
	cfg.RoundNumberThreshold = GetFloatEnv("RISK_ROUND_NUMBER_THRESHOLD", cfg.RoundNumberThreshold)
	return cfg
}
