package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the full application configuration. Values come from an
// optional YAML file; CLI flags override individual fields afterwards.
type AppConfig struct {
	SeedURL     string        `yaml:"seed_url,omitempty"`
	OutputPath  string        `yaml:"output_path,omitempty"`
	MaxDepth    int           `yaml:"max_depth"`
	MaxPages    int           `yaml:"max_pages"`
	CrossDomain bool          `yaml:"cross_domain,omitempty"`
	MaxQueue    int           `yaml:"max_queue,omitempty"` // Frontier cap; excess candidates are dropped
	UserAgent   string        `yaml:"user_agent,omitempty"`
	Debug       bool          `yaml:"debug,omitempty"`

	FetchTimeout time.Duration `yaml:"fetch_timeout,omitempty"` // Internal to the fetcher, not a crawl parameter
	MaxBodyBytes int64         `yaml:"max_body_bytes,omitempty"`

	HTTPClientSettings HTTPClientConfig `yaml:"http_client_settings,omitempty"`
}

// HTTPClientConfig holds settings for the shared HTTP client
type HTTPClientConfig struct {
	MaxIdleConns        int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout     time.Duration `yaml:"idle_conn_timeout,omitempty"`       // Timeout for idle connections
	TLSHandshakeTimeout time.Duration `yaml:"tls_handshake_timeout,omitempty"`   // Timeout for TLS handshake
	DialerTimeout       time.Duration `yaml:"dialer_timeout,omitempty"`          // Connection dial timeout
	DialerKeepAlive     time.Duration `yaml:"dialer_keep_alive,omitempty"`       // TCP keep-alive interval
}

// Load reads an AppConfig from a YAML file. A missing path returns the
// zero config so flag defaults apply cleanly.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file '%s': %w", path, err)
	}
	return &cfg, nil
}
