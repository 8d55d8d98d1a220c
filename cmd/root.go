package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"batteryspec/worker/config"
	"batteryspec/worker/internal/browser"
	"batteryspec/worker/internal/scraper"
	"batteryspec/worker/logger"
	"batteryspec/worker/services/cache"
	"batteryspec/worker/services/publisher"
	"batteryspec/worker/services/sink"
	"batteryspec/worker/services/worker"

	"github.com/spf13/cobra"
)

var (
	flagVerbose    bool
	flagOutput     string
	flagHeadless   bool
	flagTimeoutSec int
	flagMode       string
)

var rootCmd = &cobra.Command{
	Use:   "battspec-worker",
	Short: "Harvest battery specifications from the vendor's battery finder",
	Long: `battspec-worker walks the vendor's dependent-dropdown battery finder
(category, vehicle brand, model, fuel) and appends every discovered battery
specification to a CSV file.

Two run modes are available: "discover" drives the live form through a
headless browser to enumerate valid combinations; "catalog" cross-products
a built-in static catalog and probes the candidate pages directly.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output CSV path (overrides OUTPUT_PATH)")
	rootCmd.Flags().BoolVar(&flagHeadless, "headless", true, "run the browser headless")
	rootCmd.Flags().IntVar(&flagTimeoutSec, "timeout", 0, "navigation timeout in seconds (overrides env)")
	rootCmd.Flags().StringVarP(&flagMode, "mode", "m", "", "run mode: discover or catalog (overrides RUN_MODE)")
}

// Execute runs the root command. A non-nil return means the run failed in a
// way that warrants a non-zero exit; completed runs with skipped
// combinations return nil.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadConfig()

	if flagVerbose {
		cfg.Verbose = true
		logger.SetVerbose()
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputPath = flagOutput
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = flagHeadless
	}
	if cmd.Flags().Changed("timeout") {
		cfg.NavigationTimeout = time.Duration(flagTimeoutSec) * time.Second
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = flagMode
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.ForComponent("main")
	log.Info().
		Str("mode", cfg.Mode).
		Str("environment", cfg.Environment).
		Str("output", cfg.OutputPath).
		Msg("Starting battery spec worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	w := worker.NewWorker(cfg, deps)
	if _, err := w.Run(ctx); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}

// buildDeps wires the collaborators for the selected mode. Initialization
// failures here are the only fatal errors of a run.
func buildDeps(ctx context.Context, cfg *config.Config) (worker.Deps, func(), error) {
	deps := worker.Deps{
		Extractor: scraper.NewExtractor(),
		Dedupe:    scraper.NewDeduplicator(),
	}
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	csvSink, err := sink.NewCSVSink(cfg.OutputPath)
	if err != nil {
		return deps, cleanup, err
	}
	deps.Sink = csvSink

	switch cfg.CacheBackend {
	case "memcache":
		deps.Cache = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Using memcache probe guard at %s", cfg.MemcacheAddr)
	case "local":
		deps.Cache = cache.NewLocalCache(0, cfg.ProbeGuardTTL)
	}

	if cfg.RedisAddr != "" {
		pub := publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisDB,
			cfg.RedisStream, cfg.RedisStreamCount, cfg.RedisStreamMaxLength)
		deps.Publisher = pub
		cleanups = append(cleanups, func() { pub.Close() })
		logger.Info("Publishing records to Redis at %s (stream: %s)", cfg.RedisAddr, cfg.RedisStream)
	}

	if cfg.Mode == config.ModeDiscover {
		chrome, err := browser.NewChrome(ctx, browser.Options{
			Headless:          cfg.Headless,
			NavigationTimeout: cfg.NavigationTimeout,
		})
		if err != nil {
			cleanup()
			return deps, func() {}, err
		}
		cleanups = append(cleanups, func() { chrome.Close() })
		deps.Browser = chrome
		deps.Fetcher = chrome
	} else {
		deps.Fetcher = browser.NewHTTPFetcher()
	}

	return deps, cleanup, nil
}
