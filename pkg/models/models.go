package models

import "time"

// QueueItem represents a URL and its depth pending processing in the
// crawl frontier. Items are created when a link is discovered (or for the
// seed), consumed exactly once when dequeued, and never mutated.
type QueueItem struct {
	URL   string // Normalized absolute URL
	Depth int    // Link hops from the seed (seed = 0)
}

// FetchResult is the outcome of fetching a single URL.
// StatusCode 0 with a non-empty Err signals a transport-layer failure
// (timeout, DNS, connection refused). Any HTTP status, including 4xx/5xx,
// is passed through as-is with Err empty.
type FetchResult struct {
	StatusCode int
	Body       string
	Err        string
}

// OK reports whether the fetch produced a successful (2xx) HTTP response.
func (r FetchResult) OK() bool {
	return r.Err == "" && r.StatusCode >= 200 && r.StatusCode < 300
}

// ParseResult holds the text content and raw hyperlinks extracted from a
// page body. A total parse failure yields the zero value.
type ParseResult struct {
	Text  string
	Links []string
}

// ExtractionResult records one email address and the page it was found
// on. Results are appended in extraction order and never deduplicated at
// this layer; deduplication happens downstream against the output file.
type ExtractionResult struct {
	Email     string
	SourceURL string // Normalized URL of the page the address appeared on
}

// CrawlSummary reports the final state of a finished crawl.
type CrawlSummary struct {
	Seed         string
	PagesVisited int
	PagesFailed  int
	ResultCount  int // Extraction results before any deduplication
	LinksDropped int // Frontier candidates dropped by the queue cap
	Duration     time.Duration
}
