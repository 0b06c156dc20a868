package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mailsweep/pkg/config"
	"mailsweep/pkg/crawler"
	"mailsweep/pkg/fetch"
	applog "mailsweep/pkg/log"
	"mailsweep/pkg/output"
	"mailsweep/pkg/process"
)

func main() {
	os.Exit(run())
}

func run() int {
	// --- Flags ---
	urlFlag := flag.String("url", "", "Seed URL to start crawling from (required unless set in config)")
	outputFlag := flag.String("output", "", "Output CSV file path (default emails.csv)")
	depthFlag := flag.Int("depth", config.DefaultMaxDepth, "Maximum crawl depth (seed is depth 0)")
	crossDomainFlag := flag.Bool("cross-domain", false, "Follow links to other domains")
	maxPagesFlag := flag.Int("max-pages", config.DefaultMaxPages, "Maximum number of pages to fetch")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	configFlag := flag.String("config", "", "Optional YAML config file")
	userAgentFlag := flag.String("user-agent", "", "Custom User-Agent header")
	timeoutFlag := flag.Duration("timeout", 0, "Per-request fetch timeout (e.g. 10s)")
	maxQueueFlag := flag.Int("max-queue", 0, "Maximum pending frontier size (excess links are dropped)")
	flag.Parse()

	log := applog.New(*debugFlag)

	// --- Load Configuration (flags override file values) ---
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Errorf("Failed to load config: %v", err)
		return 1
	}
	applyFlags(cfg, *configFlag != "", *urlFlag, *outputFlag, *depthFlag, *crossDomainFlag, *maxPagesFlag, *debugFlag, *userAgentFlag, *timeoutFlag, *maxQueueFlag)

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		log.Warn(w)
	}
	if err != nil {
		log.Errorf("Configuration error: %v", err)
		return 1
	}
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	// Run-scoped logger: every line of this invocation carries run_id.
	runLog := log.WithField("run_id", uuid.NewString())
	runLog.WithFields(logrus.Fields{
		"seed":         cfg.SeedURL,
		"output":       cfg.OutputPath,
		"max_depth":    cfg.MaxDepth,
		"max_pages":    cfg.MaxPages,
		"cross_domain": cfg.CrossDomain,
	}).Info("mailsweep starting")

	// --- Signal Handling (cancel between pages, force exit on second) ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		sig := <-sigChan
		runLog.Warnf("Received signal: %v. Finishing current page then stopping...", sig)
		cancel()
		select {
		case sig = <-sigChan:
			runLog.Warnf("Received second signal: %v. Forcing exit.", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			runLog.Warn("Graceful shutdown period exceeded. Forcing exit.")
			os.Exit(1)
		}
	}()

	// --- Initialize Components ---
	httpClient := fetch.NewClient(cfg.HTTPClientSettings, cfg.FetchTimeout, runLog)
	fetcher := fetch.NewFetcher(httpClient, cfg.UserAgent, cfg.MaxBodyBytes, runLog)
	parser := process.NewHTMLParser(runLog)
	extractor := process.NewRegexExtractor()
	crawlerInstance := crawler.NewCrawler(fetcher, parser, extractor, cfg.MaxQueue, runLog)

	// --- Crawl ---
	results, crawlErr := crawlerInstance.Crawl(ctx, cfg.SeedURL, cfg.MaxDepth, cfg.CrossDomain, cfg.MaxPages)
	if crawlErr != nil && !errors.Is(crawlErr, context.Canceled) {
		runLog.Errorf("Crawl failed: %v", crawlErr)
		return 1
	}

	// --- Deduplicate & Persist ---
	store := output.NewCSVStore(cfg.OutputPath, runLog)
	if err := store.LoadExisting(); err != nil {
		runLog.Errorf("Failed to read existing output: %v", err)
		return 1
	}
	written, err := store.Append(results)
	if err != nil {
		runLog.Errorf("Failed to write output: %v", err)
		return 1
	}

	// --- Final Summary ---
	summary := crawlerInstance.Summary()
	runLog.Info("========================================================================")
	runLog.Info("CRAWL FINISHED")
	runLog.Infof("Pages visited: %d (failed: %d), duration: %v", summary.PagesVisited, summary.PagesFailed, summary.Duration)
	runLog.Infof("Addresses extracted (pre-dedup): %d, new rows written: %d", summary.ResultCount, written)
	if summary.LinksDropped > 0 {
		runLog.Infof("Frontier candidates dropped by queue cap: %d", summary.LinksDropped)
	}
	runLog.Info("========================================================================")

	if errors.Is(crawlErr, context.Canceled) {
		runLog.Warn("Crawl cancelled gracefully; partial results were persisted.")
	}
	return 0
}

// applyFlags overlays flag values onto the config. An explicitly
// provided flag always wins over the file value; without a config file
// the flag defaults stand. A config file may set max_depth to 0 for a
// seed-only crawl, so depth and max-pages only fall back to their flag
// defaults when no file was loaded.
func applyFlags(cfg *config.AppConfig, hasConfigFile bool, url, out string, depth int, crossDomain bool, maxPages int, debug bool, userAgent string, timeout time.Duration, maxQueue int) {
	if url != "" {
		cfg.SeedURL = url
	}
	if out != "" {
		cfg.OutputPath = out
	}
	if flagProvided("depth") || !hasConfigFile {
		cfg.MaxDepth = depth
	}
	if flagProvided("max-pages") || !hasConfigFile {
		cfg.MaxPages = maxPages
	}
	if crossDomain {
		cfg.CrossDomain = true
	}
	if debug {
		cfg.Debug = true
	}
	if userAgent != "" {
		cfg.UserAgent = userAgent
	}
	if timeout > 0 {
		cfg.FetchTimeout = timeout
	}
	if maxQueue > 0 {
		cfg.MaxQueue = maxQueue
	}
}

// flagProvided reports whether the named flag was set on the command line.
func flagProvided(name string) bool {
	provided := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			provided = true
		}
	})
	return provided
}
