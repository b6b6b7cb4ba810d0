package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	TripsStoreMemory   = "memory"
	TripsStorePostgres = "postgres"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RepositoriesConfig struct {
	// TripsStore selects the saved-trips backend: memory or postgres.
	TripsStore string
	Postgres   PostgresConfig
}

type WeatherConfig struct {
	APIKey          string
	BaseURL         string
	RefreshInterval time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
	DisplayTimezone string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type ObservabilityConfig struct {
	ServiceName  string
	MetricsAddr  string
	PprofAddr    string
	OTLPEndpoint string
	LogLevel     string
}

type Config struct {
	Repositories   RepositoriesConfig
	Weather        WeatherConfig
	Gemini         GeminiConfig
	Observability  ObservabilityConfig
	ServerPort     string
	// AllowedOrigins feeds the CORS middleware. Empty means any origin.
	AllowedOrigins []string
}

func Load() (*Config, error) {
	refresh, err := time.ParseDuration(getEnvOrDefault("WEATHER_REFRESH_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_REFRESH_INTERVAL: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnvOrDefault("WEATHER_RATE_LIMIT_RPS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(getEnvOrDefault("WEATHER_RATE_LIMIT_BURST", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_RATE_LIMIT_BURST: %w", err)
	}

	cfg := &Config{
		Repositories: RepositoriesConfig{
			TripsStore: getEnvOrDefault("TRIPS_STORE", TripsStoreMemory),
			Postgres: PostgresConfig{
				Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:     getEnvOrDefault("POSTGRES_PORT", "5454"),
				DB:       getEnvOrDefault("POSTGRES_DB", "wanderai"),
				Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
				Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
				SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
				MaxConns: 10,
				MinConns: 1,
			},
		},
		Weather: WeatherConfig{
			APIKey:          os.Getenv("OPENWEATHER_API_KEY"),
			BaseURL:         getEnvOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
			RefreshInterval: refresh,
			RateLimitRPS:    rps,
			RateLimitBurst:  burst,
			DisplayTimezone: getEnvOrDefault("WEATHER_DISPLAY_TZ", "Local"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Observability: ObservabilityConfig{
			ServiceName:  getEnvOrDefault("SERVICE_NAME", "wanderai"),
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:    getEnvOrDefault("PPROF_ADDR", ":6060"),
			OTLPEndpoint: getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4318"),
			LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		},
		ServerPort:     getEnvOrDefault("SERVER_PORT", "8091"),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Weather.APIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY environment variable is required")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if c.Weather.RefreshInterval <= 0 {
		return fmt.Errorf("WEATHER_REFRESH_INTERVAL must be positive")
	}
	switch c.Repositories.TripsStore {
	case TripsStoreMemory:
	case TripsStorePostgres:
		if c.Repositories.Postgres.Password == "" {
			return fmt.Errorf("POSTGRES_PASSWORD environment variable is required")
		}
	default:
		return fmt.Errorf("unknown TRIPS_STORE %q", c.Repositories.TripsStore)
	}
	return nil
}

// DisplayLocation resolves the zone used to pick the noon-nearest sample.
func (c WeatherConfig) DisplayLocation() (*time.Location, error) {
	if c.DisplayTimezone == "" || c.DisplayTimezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.DisplayTimezone)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
