package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the client apps read from the environment.
type Config struct {
	// GatewayBaseURL is the REST base of the catalog/order gateway,
	// including the /api prefix.
	GatewayBaseURL string
	// GatewayWSURL is the real-time channel endpoint.
	GatewayWSURL string
	// Port is only used by the mock gateway binary.
	Port          string
	LogLevel      string
	EnableTracing bool
}

// Load reads .env (if present) and the environment. Missing values
// fall back to the local development gateway.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	return &Config{
		GatewayBaseURL: getEnv("GATEWAY_BASE_URL", "http://localhost:8080/api"),
		GatewayWSURL:   getEnv("GATEWAY_WS_URL", "ws://localhost:8080/ws"),
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		EnableTracing:  os.Getenv("ENABLE_TRACING") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
