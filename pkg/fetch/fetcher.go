package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"mailsweep/pkg/models"
)

// PageFetcher turns a URL into a status/body/error triple. Implementations
// never return a Go error for ordinary network or HTTP conditions; those
// are encoded in the FetchResult so the orchestrator can contain them to
// the page being processed.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) models.FetchResult
}

// Fetcher performs HTTP GETs using an underlying http.Client. Timeout and
// the response-body size cap are internal configuration, not crawl
// parameters.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	log          *logrus.Entry
}

// NewFetcher creates a new Fetcher instance
func NewFetcher(client *http.Client, userAgent string, maxBodyBytes int64, log *logrus.Entry) *Fetcher {
	return &Fetcher{
		client:       client,
		userAgent:    userAgent,
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
}

// Fetch performs a single HTTP GET for the given URL.
// Transport failures (DNS, refused connection, timeout) come back as
// StatusCode 0 with Err populated. Any HTTP status is returned as-is with
// the body read up to the configured cap; a body exceeding the cap is
// reported as a fetch-layer failure since the page cannot be processed
// whole.
func (f *Fetcher) Fetch(ctx context.Context, url string) models.FetchResult {
	reqLog := f.log.WithField("url", url)

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if reqErr != nil {
		reqLog.Warnf("Failed to create request: %v", reqErr)
		return models.FetchResult{Err: fmt.Sprintf("creating request: %v", reqErr)}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, doErr := f.client.Do(req)
	if doErr != nil {
		reqLog.Debugf("Transport error: %v", doErr)
		return models.FetchResult{Err: doErr.Error()}
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	// Basic Content-Type check (informational, doesn't stop processing)
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if contentType != "" && !strings.HasPrefix(contentType, "text/html") &&
		!strings.HasPrefix(contentType, "application/xhtml+xml") &&
		!strings.HasPrefix(contentType, "text/plain") {
		reqLog.Warnf("Unexpected Content-Type '%s'. Proceeding with parsing attempt.", contentType)
	}

	// Read response body with size limit to prevent OOM on oversized pages
	limitedReader := io.LimitReader(resp.Body, f.maxBodyBytes+1) // +1 to detect exceeding the limit
	bodyBytes, readErr := io.ReadAll(limitedReader)
	if readErr != nil {
		reqLog.Debugf("Body read error: %v", readErr)
		return models.FetchResult{Err: fmt.Sprintf("reading body: %v", readErr)}
	}
	if int64(len(bodyBytes)) > f.maxBodyBytes {
		reqLog.Warnf("Page exceeds max body size (%d bytes), treating as fetch failure", f.maxBodyBytes)
		return models.FetchResult{Err: fmt.Sprintf("body exceeds max size (%d bytes)", f.maxBodyBytes)}
	}

	reqLog.WithFields(logrus.Fields{"status_code": resp.StatusCode, "bytes": len(bodyBytes)}).Debug("Fetched")
	return models.FetchResult{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
}
