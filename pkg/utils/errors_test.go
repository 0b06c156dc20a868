package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestCategorizeError_NilError(t *testing.T) {
	result := CategorizeError(nil)
	if result != "None" {
		t.Errorf("CategorizeError(nil) = %q, want %q", result, "None")
	}
}

func TestCategorizeError_SentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"InvalidSeedURL", ErrInvalidSeedURL, "Seed_Invalid"},
		{"DomainExtraction", ErrDomainExtraction, "Seed_NoDomain"},
		{"FetchFailed", ErrFetchFailed, "Fetch_Other"},
		{"HTTPStatus", ErrHTTPStatus, "HTTP_Other"},
		{"Parsing", ErrParsing, "Parsing_HTML"},
		{"Filesystem", ErrFilesystem, "Filesystem"},
		{"ConfigValidation", ErrConfigValidation, "Config_Validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CategorizeError(tt.err)
			if result != tt.expected {
				t.Errorf("CategorizeError(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestCategorizeError_WrappedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "WrappedInvalidSeed",
			err:      fmt.Errorf("validating flags: %w", ErrInvalidSeedURL),
			expected: "Seed_Invalid",
		},
		{
			name:     "FetchTimeout",
			err:      fmt.Errorf("%w: context deadline exceeded", ErrFetchFailed),
			expected: "Fetch_Timeout",
		},
		{
			name:     "FetchConnectionRefused",
			err:      fmt.Errorf("%w: dial tcp: connection refused", ErrFetchFailed),
			expected: "Fetch_ConnectionRefused",
		},
		{
			name:     "FetchDNS",
			err:      fmt.Errorf("%w: lookup nope.invalid: no such host", ErrFetchFailed),
			expected: "Fetch_DNSLookup",
		},
		{
			name:     "HTTPNotFound",
			err:      fmt.Errorf("%w: status 404", ErrHTTPStatus),
			expected: "HTTP_404",
		},
		{
			name:     "HTTPServerError",
			err:      fmt.Errorf("%w: status 503", ErrHTTPStatus),
			expected: "HTTP_5xx",
		},
		{
			name:     "ParsingURL",
			err:      fmt.Errorf("%w: resolving URL reference", ErrParsing),
			expected: "Parsing_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CategorizeError(tt.err)
			if result != tt.expected {
				t.Errorf("CategorizeError(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestCategorizeError_UnknownError(t *testing.T) {
	result := CategorizeError(errors.New("something else entirely"))
	if result != "Unknown" {
		t.Errorf("CategorizeError(unknown) = %q, want %q", result, "Unknown")
	}
}
