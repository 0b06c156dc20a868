package config

import (
	"fmt"
	"time"

	"mailsweep/pkg/parse"
	"mailsweep/pkg/utils"
)

// Defaults applied by Validate.
const (
	DefaultMaxDepth     = 3
	DefaultMaxPages     = 100
	DefaultMaxQueue     = 10000
	DefaultOutputPath   = "emails.csv"
	DefaultUserAgent    = "mailsweep/1.0"
	DefaultFetchTimeout = 30 * time.Second
	DefaultMaxBodyBytes = 10 * 1024 * 1024 // 10MB
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// SeedURL is the only field that must be present and well-formed.
	if c.SeedURL == "" {
		return warnings, fmt.Errorf("%w: seed URL is required (-url flag or seed_url in config)", utils.ErrConfigValidation)
	}
	normalized, parsed, parseErr := parse.ParseAndNormalize(c.SeedURL)
	if parseErr != nil {
		return warnings, fmt.Errorf("%w: seed URL '%s': %v", utils.ErrInvalidSeedURL, c.SeedURL, parseErr)
	}
	if !parse.IsCrawlableScheme(parsed) {
		return warnings, fmt.Errorf("%w: seed URL '%s' must be http or https", utils.ErrInvalidSeedURL, c.SeedURL)
	}
	c.SeedURL = normalized

	// MaxDepth
	if c.MaxDepth < 0 {
		warnings = append(warnings, fmt.Sprintf("max_depth cannot be negative, defaulting to %d", DefaultMaxDepth))
		c.MaxDepth = DefaultMaxDepth
	}

	// MaxPages
	if c.MaxPages <= 0 {
		warnings = append(warnings, fmt.Sprintf("max_pages should be > 0, defaulting to %d", DefaultMaxPages))
		c.MaxPages = DefaultMaxPages
	}

	// MaxQueue
	if c.MaxQueue <= 0 {
		c.MaxQueue = DefaultMaxQueue
	}

	// OutputPath
	if c.OutputPath == "" {
		warnings = append(warnings, fmt.Sprintf("output_path is empty, defaulting to '%s'", DefaultOutputPath))
		c.OutputPath = DefaultOutputPath
	}

	// UserAgent
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}

	// FetchTimeout
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}

	// MaxBodyBytes
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// HTTP client settings
	if c.HTTPClientSettings.MaxIdleConns <= 0 {
		c.HTTPClientSettings.MaxIdleConns = 100
	}
	if c.HTTPClientSettings.MaxIdleConnsPerHost <= 0 {
		c.HTTPClientSettings.MaxIdleConnsPerHost = 10
	}
	if c.HTTPClientSettings.IdleConnTimeout <= 0 {
		c.HTTPClientSettings.IdleConnTimeout = 90 * time.Second
	}
	if c.HTTPClientSettings.TLSHandshakeTimeout <= 0 {
		c.HTTPClientSettings.TLSHandshakeTimeout = 10 * time.Second
	}
	if c.HTTPClientSettings.DialerTimeout <= 0 {
		c.HTTPClientSettings.DialerTimeout = 15 * time.Second
	}
	if c.HTTPClientSettings.DialerKeepAlive <= 0 {
		c.HTTPClientSettings.DialerKeepAlive = 30 * time.Second
	}

	return warnings, nil
}
