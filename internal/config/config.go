package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for market-service.
type Config struct {
	Port        string
	Environment string

	JWTSecret string
	JWTTTL    time.Duration

	AMQPURL         string
	AMQPExchange    string
	AuditRoutingKey string

	OTLPEndpoint string

	AgentEndpoint string

	SeedDemo    bool
	DebugRoutes bool
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getEnv("PORT", "8083"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret"),
		JWTTTL:          getDuration("JWT_TTL", 24*time.Hour),
		AMQPURL:         getEnv("AMQP_URL", ""),
		AMQPExchange:    getEnv("AMQP_EXCHANGE", "market.events"),
		AuditRoutingKey: getEnv("AUDIT_ROUTING_KEY", "audit.market"),
		OTLPEndpoint:    getEnv("OTLP_ENDPOINT", ""),
		AgentEndpoint:   getEnv("AGENT_ENDPOINT", ""),
		SeedDemo:        getBool("SEED_DEMO", true),
		DebugRoutes:     getBool("DEBUG_ROUTES", false),
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
