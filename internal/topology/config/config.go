package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Config holds the topology agent configuration
type Config struct {
	ControlPlane ControlPlaneConfig `json:"control_plane" yaml:"control_plane"`
	Stream       StreamConfig       `json:"stream" yaml:"stream"`
	Client       ClientConfig       `json:"client" yaml:"client"`
	Admin        AdminConfig        `json:"admin" yaml:"admin"`
	Logger       logger.Config      `json:"logger" yaml:"logger"`
}

type ControlPlaneConfig struct {
	Endpoints               []string `json:"endpoints" yaml:"endpoints"`
	Username                string   `json:"username" yaml:"username"`
	Password                string   `json:"password" yaml:"password"`
	FetchTimeoutMS          int      `json:"fetch_timeout_ms" yaml:"fetch_timeout_ms"`
	BreakerFailureThreshold int      `json:"breaker_failure_threshold" yaml:"breaker_failure_threshold"`
	BreakerOpenTimeoutMS    int      `json:"breaker_open_timeout_ms" yaml:"breaker_open_timeout_ms"`
}

type StreamConfig struct {
	MaxContentLength int `json:"max_content_length" yaml:"max_content_length"`
	ReconnectMinMS   int `json:"reconnect_min_ms" yaml:"reconnect_min_ms"`
	ReconnectMaxMS   int `json:"reconnect_max_ms" yaml:"reconnect_max_ms"`
}

type ClientConfig struct {
	Bucket        string `json:"bucket" yaml:"bucket"`
	PreferredPort string `json:"preferred_port" yaml:"preferred_port"` // "direct" or "proxy"
	DialTimeoutMS int    `json:"dial_timeout_ms" yaml:"dial_timeout_ms"`
	MaxRetries    int    `json:"max_retries" yaml:"max_retries"`
	RetireGraceMS int    `json:"retire_grace_ms" yaml:"retire_grace_ms"`
	RetireWorkers int    `json:"retire_workers" yaml:"retire_workers"`
}

type AdminConfig struct {
	HTTPAddr string `json:"http_addr" yaml:"http_addr"`
	GRPCAddr string `json:"grpc_addr" yaml:"grpc_addr"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		ControlPlane: ControlPlaneConfig{
			Endpoints:               []string{"http://localhost:8091/pools"},
			FetchTimeoutMS:          5000,
			BreakerFailureThreshold: 3,
			BreakerOpenTimeoutMS:    30000,
		},
		Stream: StreamConfig{
			MaxContentLength: 4 * 1024 * 1024,
			ReconnectMinMS:   500,
			ReconnectMaxMS:   30000,
		},
		Client: ClientConfig{
			Bucket:        "default",
			PreferredPort: "direct",
			DialTimeoutMS: 2000,
			MaxRetries:    3,
			RetireWorkers: 2,
		},
		Admin: AdminConfig{
			HTTPAddr: ":8095",
			GRPCAddr: ":8096",
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "topology", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		// The logger is configured from this file, so it is not ready yet.
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func (c ControlPlaneConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

func (c ControlPlaneConfig) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenTimeoutMS) * time.Millisecond
}

func (c StreamConfig) ReconnectMin() time.Duration {
	return time.Duration(c.ReconnectMinMS) * time.Millisecond
}

func (c StreamConfig) ReconnectMax() time.Duration {
	return time.Duration(c.ReconnectMaxMS) * time.Millisecond
}

func (c ClientConfig) DialTimeout() time.Duration {
	return time.Duration(c.DialTimeoutMS) * time.Millisecond
}

func (c ClientConfig) RetireGrace() time.Duration {
	return time.Duration(c.RetireGraceMS) * time.Millisecond
}
