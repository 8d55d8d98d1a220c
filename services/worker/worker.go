package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"batteryspec/worker/config"
	"batteryspec/worker/helpers"
	"batteryspec/worker/internal/browser"
	"batteryspec/worker/internal/catalog"
	"batteryspec/worker/internal/scraper"
	"batteryspec/worker/logger"
	apperr "batteryspec/worker/pkg/errors"
	"batteryspec/worker/services/cache"
	"batteryspec/worker/services/publisher"
	"batteryspec/worker/services/sink"
)

// probeGuardPrefix namespaces cache keys marking recently probed paths.
const probeGuardPrefix = "probed:"

// Deps holds the collaborators the worker orchestrates. Browser may be nil
// in catalog mode; Publisher and Cache are optional everywhere.
type Deps struct {
	Browser   scraper.Browser
	Fetcher   browser.PageFetcher
	Extractor *scraper.Extractor
	Dedupe    *scraper.Deduplicator
	Sink      sink.Sink
	Publisher publisher.Publisher
	Cache     cache.CacheService

	// Source overrides combination enumeration; nil selects by run mode.
	Source func(ctx context.Context) ([]scraper.Combination, error)
}

// Worker sequences discovery, page probes, extraction, deduplication and
// persistence. Strictly sequential: one page in flight at a time, with a
// politeness delay between probes. The deduplicator's seen-set and the
// sink's row counter are the only run-scoped mutable state, all touched
// from this single control flow.
type Worker struct {
	cfg  *config.Config
	deps Deps
	log  *logger.Logger
}

// NewWorker creates a worker.
func NewWorker(cfg *config.Config, deps Deps) *Worker {
	return &Worker{
		cfg:  cfg,
		deps: deps,
		log:  logger.ForWorker(),
	}
}

// Run executes one full harvest and always returns a summary, also on
// cancellation. The returned error is non-nil only for failures that make
// the whole run meaningless, such as discovery never getting off the ground.
func (w *Worker) Run(ctx context.Context) (*scraper.RunSummary, error) {
	start := time.Now()
	summary := &scraper.RunSummary{Output: w.cfg.OutputPath}

	combos, err := w.enumerate(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		w.finalize(summary, start)
		return summary, err
	}

	w.log.Info().
		Str("mode", w.cfg.Mode).
		Int("combinations", len(combos)).
		Msg("Starting combination probes")

	for i, combo := range combos {
		if ctx.Err() != nil {
			w.log.Info().Int("remaining", len(combos)-i).Msg("Run cancelled, stopping probes")
			break
		}

		w.processCombination(ctx, combo, summary)

		// Politeness delay between probes; skipped after the last one.
		if i < len(combos)-1 {
			if !sleep(ctx, w.cfg.PolitenessDelay) {
				break
			}
		}
	}

	w.finalize(summary, start)
	w.logSummary(summary)
	return summary, nil
}

// enumerate produces the combination sequence for this run.
func (w *Worker) enumerate(ctx context.Context) ([]scraper.Combination, error) {
	if w.deps.Source != nil {
		return w.deps.Source(ctx)
	}

	switch w.cfg.Mode {
	case config.ModeCatalog:
		return catalog.CrossProduct(), nil
	default:
		d := scraper.NewDiscoverer(w.deps.Browser, scraper.DiscovererConfig{
			LandingURL:       w.cfg.LandingURL,
			CategorySelector: w.cfg.CategorySelector,
			BrandSelector:    w.cfg.BrandSelector,
			ModelSelector:    w.cfg.ModelSelector,
			FuelSelector:     w.cfg.FuelSelector,
			SettleDelay:      w.cfg.SettleDelay,
			SettlePolls:      w.cfg.SettlePolls,
		})
		return d.Discover(ctx)
	}
}

// processCombination resolves one probe fully: fetch, extract, dedupe,
// persist. Errors are recorded in the summary and never propagate; the
// combination boundary is the error firewall of the run.
func (w *Worker) processCombination(ctx context.Context, combo scraper.Combination, summary *scraper.RunSummary) {
	pageURL := scraper.BuildURL(w.cfg.BaseURL, combo)

	if w.guardHit(pageURL) {
		w.log.Debug().Str("url", pageURL).Msg("Probe guard hit, skipping")
		return
	}

	summary.Attempted++

	var html string
	retryOpts := helpers.DefaultRetryOptions()
	retryOpts.MaxAttempts = uint64(w.cfg.MaxRetries)
	err := helpers.Retry(ctx, retryOpts, apperr.Retryable, func() error {
		var ferr error
		html, ferr = w.deps.Fetcher.Fetch(ctx, pageURL)
		return ferr
	})
	if err != nil {
		if apperr.TypeOf(err) == apperr.ErrorTypeRateLimit {
			w.setGuard(pageURL)
		}
		summary.Failed++
		summary.AddError(fmt.Sprintf("%s: %v", pageURL, err))
		w.log.Warn().Err(err).Str("url", pageURL).Msg("Probe failed")
		return
	}

	records := w.deps.Extractor.Extract(html, combo, pageURL)
	fresh := w.deps.Dedupe.Filter(records)

	for _, rec := range fresh {
		if err := w.deps.Sink.Append(rec); err != nil {
			summary.AddError(fmt.Sprintf("%s: %v", pageURL, err))
			w.log.Error().Err(err).Str("url", pageURL).Msg("Failed to write record")
			continue
		}
		summary.Written++
		w.publish(rec)
	}

	w.setGuard(pageURL)
	summary.Succeeded++

	w.log.Debug().
		Str("url", pageURL).
		Int("records", len(records)).
		Int("fresh", len(fresh)).
		Msg("Probe resolved")
}

// publish forwards an accepted record to the stream, best effort.
func (w *Worker) publish(rec *scraper.Record) {
	if w.deps.Publisher == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to marshal record for publishing")
		return
	}
	if err := w.deps.Publisher.Publish("battspec", data); err != nil {
		w.log.Warn().Err(err).Msg("Failed to publish record")
	}
}

// guardHit reports whether the path was probed within the guard TTL.
func (w *Worker) guardHit(pageURL string) bool {
	if w.deps.Cache == nil {
		return false
	}
	_, err := w.deps.Cache.Get(probeGuardPrefix + pageURL)
	return err == nil
}

func (w *Worker) setGuard(pageURL string) {
	if w.deps.Cache == nil {
		return
	}
	if err := w.deps.Cache.Set(probeGuardPrefix+pageURL, []byte("1"), w.cfg.ProbeGuardTTL); err != nil {
		w.log.Debug().Err(err).Msg("Probe guard write failed")
	}
}

// finalize closes the sink and fills the summary tail fields.
func (w *Worker) finalize(summary *scraper.RunSummary, start time.Time) {
	summary.Duplicates = w.deps.Dedupe.Duplicates()

	rows, size, err := w.deps.Sink.Finalize()
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to finalize sink")
		summary.AddError(fmt.Sprintf("finalize: %v", err))
	}
	summary.OutputRows = rows
	summary.OutputSize = size
	summary.Duration = time.Since(start)

	if w.deps.Publisher != nil {
		if err := w.deps.Publisher.TrimStreams(); err != nil {
			w.log.Warn().Err(err).Msg("Failed to trim streams")
		}
	}
}

// logSummary always prints the end-of-run report, success or not.
func (w *Worker) logSummary(s *scraper.RunSummary) {
	ev := w.log.Info().
		Int("attempted", s.Attempted).
		Int("succeeded", s.Succeeded).
		Int("failed", s.Failed).
		Int("written", s.Written).
		Int("duplicates", s.Duplicates).
		Int("output_rows", s.OutputRows).
		Int64("output_bytes", s.OutputSize).
		Dur("duration", s.Duration).
		Str("output", s.Output)
	if len(s.Errors) > 0 {
		ev = ev.Strs("errors", s.Errors)
	}
	ev.Msg("Run complete")
}

// sleep waits for d unless ctx is cancelled first.
func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
