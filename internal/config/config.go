package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultElevationAPIURL is the Google Maps Elevation API JSON endpoint.
const DefaultElevationAPIURL = "https://maps.googleapis.com/maps/api/elevation/json"

// Config holds all run settings, populated from environment variables.
type Config struct {
	APIKey     string
	InputPath  string
	OutputPath string

	ElevationAPIURL  string
	ElevationTimeout time.Duration

	LogLevel  string
	LogFormat string

	// Optional outputs. Empty disables the output.
	ChartPNGPath    string
	ChartHTMLPath   string
	MetricsTextfile string

	// Kafka profile sink, enabled when brokers are set.
	KafkaBrokers []string
	KafkaTopic   string
}

// KafkaEnabled reports whether the profile should be published to Kafka.
func (c *Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	timeout, err := parsePositiveDuration("ELEVATION_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:     os.Getenv("ELEVATION_API_KEY"),
		InputPath:  sharedcfg.EnvOrDefault("INPUT_PATH", "coordinates.txt"),
		OutputPath: sharedcfg.EnvOrDefault("OUTPUT_PATH", "profile.csv"),

		ElevationAPIURL:  sharedcfg.EnvOrDefault("ELEVATION_API_URL", DefaultElevationAPIURL),
		ElevationTimeout: timeout,

		LogLevel:  strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "json")),

		ChartPNGPath:    os.Getenv("CHART_PNG_PATH"),
		ChartHTMLPath:   os.Getenv("CHART_HTML_PATH"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),

		KafkaBrokers: sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "elevation-profiles"),
	}

	if cfg.APIKey == "" {
		return nil, errors.New("ELEVATION_API_KEY is required")
	}
	if cfg.InputPath == cfg.OutputPath {
		return nil, errors.New("OUTPUT_PATH must differ from INPUT_PATH")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	return cfg, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
