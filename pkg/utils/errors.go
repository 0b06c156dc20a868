package utils

import (
	"errors"
	"strings"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrInvalidSeedURL   = errors.New("invalid seed URL")                 // Seed is not a valid absolute http(s) URL
	ErrDomainExtraction = errors.New("cannot derive domain from seed")   // Normalized seed has no usable host
	ErrFetchFailed      = errors.New("fetch failed")                     // Transport-layer failure (timeout, DNS, refused)
	ErrHTTPStatus       = errors.New("non-success HTTP status")          // Any non-2xx status
	ErrParsing          = errors.New("parsing error")                    // Wraps HTML/URL parsing errors
	ErrFilesystem       = errors.New("filesystem error")                 // Wraps os errors on the output file
	ErrConfigValidation = errors.New("configuration validation error")
)

// CategorizeError maps an error to a predefined category string for
// logging and the crawl summary.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	switch {
	case errors.Is(err, ErrInvalidSeedURL):
		return "Seed_Invalid"
	case errors.Is(err, ErrDomainExtraction):
		return "Seed_NoDomain"
	case errors.Is(err, ErrFetchFailed):
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline exceeded") {
			return "Fetch_Timeout"
		}
		if strings.Contains(errMsg, "connection refused") {
			return "Fetch_ConnectionRefused"
		}
		if strings.Contains(errMsg, "no such host") {
			return "Fetch_DNSLookup"
		}
		return "Fetch_Other"
	case errors.Is(err, ErrHTTPStatus):
		errMsg := err.Error()
		if strings.Contains(errMsg, " 404") {
			return "HTTP_404"
		}
		if strings.Contains(errMsg, " 403") {
			return "HTTP_403"
		}
		if strings.Contains(errMsg, " 429") {
			return "HTTP_429"
		}
		if strings.Contains(errMsg, " 5") {
			return "HTTP_5xx"
		}
		return "HTTP_Other"
	case errors.Is(err, ErrParsing):
		if strings.Contains(err.Error(), "URL") {
			return "Parsing_URL"
		}
		return "Parsing_HTML"
	case errors.Is(err, ErrFilesystem):
		return "Filesystem"
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	}

	return "Unknown"
}
