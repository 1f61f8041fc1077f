package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings
// ("30s", "5m") or bare second counts.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err == nil {
		dur, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(dur)
		return nil
	}

	var secs float64
	if err := node.Decode(&secs); err != nil {
		return fmt.Errorf("invalid duration node: %w", err)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// Std returns the underlying time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CacheConfig controls the shared TTL cache.
type CacheConfig struct {
	TTL           Duration `yaml:"ttl"`
	SweepInterval Duration `yaml:"sweep_interval"`
}

// ScraperConfig controls the scrape subprocess.
type ScraperConfig struct {
	Timeout Duration `yaml:"timeout"`
}

// TrendsConfig controls the trends client.
type TrendsConfig struct {
	MinInterval Duration `yaml:"min_interval"`
}

// AnalysisConfig controls the analysis pipeline.
type AnalysisConfig struct {
	Deadline           Duration `yaml:"deadline"`
	Country            string   `yaml:"country"`
	MinDurationMinutes int      `yaml:"min_duration_minutes"`
	EnrichDelay        Duration `yaml:"enrich_delay"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Cache    CacheConfig    `yaml:"cache"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Trends   TrendsConfig   `yaml:"trends"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Log      LogConfig      `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(90 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Cache: CacheConfig{
			TTL:           Duration(time.Hour),
			SweepInterval: Duration(5 * time.Minute),
		},
		Scraper: ScraperConfig{
			Timeout: Duration(30 * time.Second),
		},
		Trends: TrendsConfig{
			MinInterval: Duration(time.Second),
		},
		Analysis: AnalysisConfig{
			Deadline:           Duration(60 * time.Second),
			Country:            "US",
			MinDurationMinutes: 40,
			EnrichDelay:        Duration(200 * time.Millisecond),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
// The PORT environment variable overrides the configured port either way.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	return cfg, nil
}
