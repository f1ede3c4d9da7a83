package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultEndpoint       = "http://numbersapi.com/random/math"
	DefaultMaxSize        = 3
	DefaultCrunchInterval = 10 * time.Second
	DefaultFetchTimeout   = 10 * time.Second
	DefaultHTTPPort       = 8080
)

// Config is the top-level configuration. Fields map 1:1 to config.example.yaml.
type Config struct {
	Cruncher CruncherConfig `yaml:"cruncher"`
	Fetcher  FetcherConfig  `yaml:"fetcher"`
	Server   ServerConfig   `yaml:"server"`
}

// CruncherConfig holds the tummy and loop settings.
type CruncherConfig struct {
	// MaxSize is the tummy capacity. Once full, each accepted fact evicts
	// the oldest one.
	MaxSize int `yaml:"max_size"`

	// Interval controls how often the background loop crunches.
	// Zero disables the loop; crunches then only happen via the API.
	Interval time.Duration `yaml:"interval"`
}

// FetcherConfig describes the numbers API endpoint.
type FetcherConfig struct {
	// Endpoint is the full URL fetched with one GET per call.
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds one round-trip, including reading the body.
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API and /metrics listen on. Zero disables
	// the server.
	HTTPPort int `yaml:"http_port"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes, applying defaults before validation.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values. It is also
// what the binary runs with when no config file exists.
func Defaults() *Config {
	return &Config{
		Cruncher: CruncherConfig{
			MaxSize:  DefaultMaxSize,
			Interval: DefaultCrunchInterval,
		},
		Fetcher: FetcherConfig{
			Endpoint: DefaultEndpoint,
			Timeout:  DefaultFetchTimeout,
		},
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Cruncher.MaxSize <= 0 {
		return fmt.Errorf("cruncher.max_size must be positive")
	}
	if cfg.Cruncher.Interval < 0 {
		return fmt.Errorf("cruncher.interval must not be negative")
	}
	if cfg.Fetcher.Endpoint == "" {
		return fmt.Errorf("fetcher.endpoint is required")
	}
	if cfg.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher.timeout must be positive")
	}
	if cfg.Server.HTTPPort < 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d out of range", cfg.Server.HTTPPort)
	}
	return nil
}
