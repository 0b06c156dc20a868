package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mailsweep/pkg/fetch"
	"mailsweep/pkg/models"
	"mailsweep/pkg/parse"
	"mailsweep/pkg/process"
	"mailsweep/pkg/queue"
	"mailsweep/pkg/utils"
)

// Crawler orchestrates a breadth-first traversal from a seed URL,
// collecting email addresses from each visited page. It owns the frontier
// queue, the visited set and the depth/page budgets; the fetcher, parser
// and extractor are injected collaborators so tests can run against
// deterministic stubs.
type Crawler struct {
	fetcher   fetch.PageFetcher
	parser    process.PageParser
	extractor process.EmailExtractor
	maxQueue  int // Frontier cap; excess discovered links are dropped
	log       *logrus.Entry

	summary models.CrawlSummary
}

// NewCrawler creates a Crawler with the given collaborators. maxQueue
// bounds the pending frontier (0 = unbounded). Pass a discard logger to
// disable observability.
func NewCrawler(fetcher fetch.PageFetcher, parser process.PageParser, extractor process.EmailExtractor, maxQueue int, log *logrus.Entry) *Crawler {
	return &Crawler{
		fetcher:   fetcher,
		parser:    parser,
		extractor: extractor,
		maxQueue:  maxQueue,
		log:       log,
	}
}

// crawlState holds all traversal state for a single Crawl invocation.
// Created fresh per call, mutated only by the loop below, discarded when
// the traversal ends.
type crawlState struct {
	frontier     *queue.FIFO
	visited      map[string]struct{}
	results      []models.ExtractionResult
	pagesVisited int
	pagesFailed  int
}

// Summary returns counters from the most recent Crawl invocation.
func (c *Crawler) Summary() models.CrawlSummary {
	return c.summary
}

// Crawl walks the site breadth-first from seedURL up to maxDepth link
// hops and maxPages fetched pages, returning every extracted address in
// extraction order, without deduplication.
//
// The only fatal errors are an invalid seed URL and a seed from which no
// domain can be derived; both are reported before any fetching begins.
// Every per-page failure (transport error, non-2xx status, unparseable
// body) is contained to that page and the traversal continues.
//
// Cancelling ctx aborts the loop between pages; the results gathered so
// far are returned together with the context error so the caller can
// still persist them.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxDepth int, crossDomain bool, maxPages int) ([]models.ExtractionResult, error) {
	start := time.Now()

	normalizedSeed, parsedSeed, err := parse.ParseAndNormalize(seedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %v", utils.ErrInvalidSeedURL, seedURL, err)
	}
	if !parse.IsCrawlableScheme(parsedSeed) {
		return nil, fmt.Errorf("%w: '%s': scheme must be http or https", utils.ErrInvalidSeedURL, seedURL)
	}
	baseDomain := strings.ToLower(parsedSeed.Hostname())
	if baseDomain == "" {
		return nil, fmt.Errorf("%w: '%s'", utils.ErrDomainExtraction, seedURL)
	}

	crawlLog := c.log.WithFields(logrus.Fields{"seed": normalizedSeed, "domain": baseDomain})
	crawlLog.WithFields(logrus.Fields{
		"max_depth":    maxDepth,
		"max_pages":    maxPages,
		"cross_domain": crossDomain,
	}).Info("Crawl starting")

	state := &crawlState{
		frontier: queue.NewFIFO(c.maxQueue),
		visited:  make(map[string]struct{}),
	}
	state.frontier.Push(models.QueueItem{URL: normalizedSeed, Depth: 0})

	for state.frontier.Len() > 0 && state.pagesVisited < maxPages {
		// Cancellation is honored between pages only; the page being
		// processed always runs to completion or page-local failure.
		select {
		case <-ctx.Done():
			crawlLog.Warnf("Crawl cancelled: %v", ctx.Err())
			c.finish(state, normalizedSeed, start)
			return state.results, ctx.Err()
		default:
		}

		item, _ := state.frontier.Pop()
		taskLog := crawlLog.WithFields(logrus.Fields{"url": item.URL, "depth": item.Depth})

		// Duplicate-enqueue collapse: the same URL can be discovered from
		// multiple pages before it is first dequeued.
		if _, done := state.visited[item.URL]; done {
			taskLog.Debug("Already visited, discarding")
			continue
		}
		// Defensive: items are never enqueued beyond maxDepth, but a
		// malformed frontier must not cause an over-deep fetch.
		if item.Depth > maxDepth {
			taskLog.Debug("Beyond max depth, discarding")
			continue
		}

		state.visited[item.URL] = struct{}{}
		state.pagesVisited++

		c.processPage(ctx, state, item, baseDomain, crossDomain, maxDepth, taskLog)
	}

	c.finish(state, normalizedSeed, start)
	crawlLog.WithFields(logrus.Fields{
		"pages_visited": state.pagesVisited,
		"pages_failed":  state.pagesFailed,
		"results":       len(state.results),
		"duration":      time.Since(start).String(),
	}).Info("Crawl finished")

	return state.results, nil
}

// processPage runs the fetch → parse → extract → discover pipeline for a
// single dequeued item. Every failure in here is page-local: the method
// logs, marks the page failed and returns, and the main loop continues.
func (c *Crawler) processPage(ctx context.Context, state *crawlState, item models.QueueItem, baseDomain string, crossDomain bool, maxDepth int, taskLog *logrus.Entry) {
	result := c.fetcher.Fetch(ctx, item.URL)
	if result.Err != "" {
		taskLog.WithField("category", utils.CategorizeError(fmt.Errorf("%w: %s", utils.ErrFetchFailed, result.Err))).
			Warnf("Fetch failed: %s", result.Err)
		state.pagesFailed++
		return
	}
	if !result.OK() {
		taskLog.WithField("status_code", result.StatusCode).Warn("Non-success status, skipping page")
		state.pagesFailed++
		return
	}

	parsed := c.parser.Parse(result.Body)
	if parsed.Text == "" && len(parsed.Links) == 0 && result.Body != "" {
		// Parser contract: total parse failure yields the zero value.
		taskLog.Warn("Page body yielded no content, skipping page")
		state.pagesFailed++
		return
	}

	emails := c.extractor.Extract(parsed.Text)
	for _, email := range emails {
		state.results = append(state.results, models.ExtractionResult{Email: email, SourceURL: item.URL})
	}
	if len(emails) > 0 {
		taskLog.Infof("Extracted %d address(es)", len(emails))
	}

	// Expand the frontier only below the depth budget; at maxDepth the
	// page's links are intentionally never discovered.
	if item.Depth >= maxDepth {
		return
	}
	baseURL, err := url.Parse(item.URL)
	if err != nil {
		// item.URL already round-tripped through normalization, so this
		// would be a programmer error, not a runtime branch.
		taskLog.Errorf("Unparseable queue item URL: %v", err)
		return
	}
	queued := 0
	for _, link := range DiscoverLinks(parsed.Links, baseDomain, baseURL, crossDomain) {
		if _, done := state.visited[link]; done {
			continue
		}
		if state.frontier.Push(models.QueueItem{URL: link, Depth: item.Depth + 1}) {
			queued++
		} else {
			taskLog.WithField("link", link).Debug("Frontier full, dropping candidate")
		}
	}
	taskLog.Debugf("Queued %d new link(s)", queued)
}

func (c *Crawler) finish(state *crawlState, seed string, start time.Time) {
	c.summary = models.CrawlSummary{
		Seed:         seed,
		PagesVisited: state.pagesVisited,
		PagesFailed:  state.pagesFailed,
		ResultCount:  len(state.results),
		LinksDropped: state.frontier.Dropped(),
		Duration:     time.Since(start),
	}
}
