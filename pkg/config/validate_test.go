package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailsweep/pkg/utils"
)

func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestAppConfig_Validate_Defaults(t *testing.T) {
	cfg := AppConfig{SeedURL: "http://example.com"}
	warnings, err := cfg.Validate()

	require.NoError(t, err)

	// Check defaults applied
	assert.Equal(t, DefaultMaxPages, cfg.MaxPages)
	assert.Equal(t, DefaultMaxQueue, cfg.MaxQueue)
	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.MaxBodyBytes)

	// Check HTTP client defaults
	assert.Equal(t, 100, cfg.HTTPClientSettings.MaxIdleConns)
	assert.Equal(t, 10, cfg.HTTPClientSettings.MaxIdleConnsPerHost)
	assert.Equal(t, 90*time.Second, cfg.HTTPClientSettings.IdleConnTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTPClientSettings.TLSHandshakeTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTPClientSettings.DialerTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTPClientSettings.DialerKeepAlive)

	// Check warnings generated
	assert.True(t, containsWarning(warnings, "max_pages should be > 0"))
	assert.True(t, containsWarning(warnings, "output_path is empty"))
}

func TestAppConfig_Validate_ZeroDepthIsValid(t *testing.T) {
	// A zero depth means seed-only crawl and must not trigger the default.
	cfg := AppConfig{SeedURL: "http://example.com", MaxDepth: 0, MaxPages: 10, OutputPath: "out.csv"}
	warnings, err := cfg.Validate()

	require.NoError(t, err)
	assert.Equal(t, 0, cfg.MaxDepth)
	assert.False(t, containsWarning(warnings, "max_depth"))
}

func TestAppConfig_Validate_NegativeDepthDefaulted(t *testing.T) {
	cfg := AppConfig{SeedURL: "http://example.com", MaxDepth: -1, MaxPages: 10, OutputPath: "out.csv"}
	warnings, err := cfg.Validate()

	require.NoError(t, err)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	assert.True(t, containsWarning(warnings, "max_depth cannot be negative"))
}

func TestAppConfig_Validate_ValidConfig(t *testing.T) {
	cfg := AppConfig{
		SeedURL:      "http://example.com/start",
		OutputPath:   "/tmp/found.csv",
		MaxDepth:     5,
		MaxPages:     250,
		MaxQueue:     500,
		UserAgent:    "custom/2.0",
		FetchTimeout: 10 * time.Second,
		MaxBodyBytes: 1 << 20,
		HTTPClientSettings: HTTPClientConfig{
			MaxIdleConns:  50,
			DialerTimeout: 5 * time.Second,
		},
	}

	warnings, err := cfg.Validate()

	require.NoError(t, err)
	assert.Empty(t, warnings)

	// Values should be preserved
	assert.Equal(t, 5, cfg.MaxDepth)
	assert.Equal(t, 250, cfg.MaxPages)
	assert.Equal(t, 500, cfg.MaxQueue)
	assert.Equal(t, "/tmp/found.csv", cfg.OutputPath)
	assert.Equal(t, "custom/2.0", cfg.UserAgent)
	assert.Equal(t, 50, cfg.HTTPClientSettings.MaxIdleConns)
	assert.Equal(t, 5*time.Second, cfg.HTTPClientSettings.DialerTimeout)
}

func TestAppConfig_Validate_NormalizesSeedURL(t *testing.T) {
	cfg := AppConfig{SeedURL: "HTTP://Example.COM:80/path/", MaxPages: 10, OutputPath: "out.csv"}
	_, err := cfg.Validate()

	require.NoError(t, err)
	assert.Equal(t, "http://example.com/path", cfg.SeedURL)
}

func TestAppConfig_Validate_SeedErrors(t *testing.T) {
	tests := []struct {
		name    string
		seedURL string
		wantErr error
	}{
		{"Missing", "", utils.ErrConfigValidation},
		{"Relative", "example.com/no-scheme", utils.ErrInvalidSeedURL},
		{"NonHTTPScheme", "ftp://example.com/", utils.ErrInvalidSeedURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{SeedURL: tt.seedURL, MaxPages: 10, OutputPath: "out.csv"}
			_, err := cfg.Validate()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
