package scraper

import (
	"context"
	"strings"
	"time"

	"batteryspec/worker/helpers"
	"batteryspec/worker/logger"
	apperr "batteryspec/worker/pkg/errors"
)

// DiscovererConfig describes the dependent-dropdown form under traversal.
type DiscovererConfig struct {
	LandingURL string

	// Comma-separated selector preference lists, one per level.
	CategorySelector string
	BrandSelector    string
	ModelSelector    string
	FuelSelector     string

	// SettleDelay bounds the wait for dependent option lists to reload
	// after a selection; SettlePolls splits it into stability polls.
	SettleDelay time.Duration
	SettlePolls int
}

// Discoverer walks the four-level dependent-dropdown form depth first and
// enumerates every reachable leaf combination. The fuel level is read, not
// iterated: a model exposes only the variants it actually supports, which is
// why the leaf set cannot be assumed from a static cross-product.
type Discoverer struct {
	browser Browser
	cfg     DiscovererConfig
	log     *logger.Logger

	landingVisits int
}

// NewDiscoverer creates a discoverer driving the given browser.
func NewDiscoverer(b Browser, cfg DiscovererConfig) *Discoverer {
	if cfg.SettlePolls < 1 {
		cfg.SettlePolls = 1
	}
	return &Discoverer{
		browser: b,
		cfg:     cfg,
		log:     logger.ForDiscoverer(),
	}
}

// Discover enumerates all leaf combinations in traversal order. A failed
// selection or an empty option list abandons that branch only; the error is
// logged and the walk continues. Only the initial landing load is fatal.
func (d *Discoverer) Discover(ctx context.Context) ([]Combination, error) {
	if err := d.visitLanding(ctx); err != nil {
		return nil, apperr.NewNetwork("discover", "failed to load landing page", err)
	}

	categories, err := d.readOptions(ctx, d.cfg.CategorySelector)
	if err != nil {
		return nil, apperr.NewDOM("discover", "failed to read category options", err)
	}
	d.log.Info().Int("categories", len(categories)).Msg("Starting form traversal")

	var combos []Combination

	for ci, category := range categories {
		if ctx.Err() != nil {
			return combos, ctx.Err()
		}
		if ci > 0 {
			if err := d.visitLanding(ctx); err != nil {
				d.logSkip("category", category.Text, err)
				continue
			}
		}

		brands, err := d.selectAndRead(ctx, d.cfg.CategorySelector, category.Value, d.cfg.BrandSelector)
		if err != nil || len(brands) == 0 {
			d.logSkip("category", category.Text, err)
			continue
		}

		for bi, brand := range brands {
			if ctx.Err() != nil {
				return combos, ctx.Err()
			}
			// The form cannot reset a nested level in isolation: every brand
			// after the first needs a full reload and category reselect.
			if bi > 0 {
				if err := d.reestablish(ctx, category.Value, ""); err != nil {
					d.logSkip("brand", brand.Text, err)
					continue
				}
			}

			models, err := d.selectAndRead(ctx, d.cfg.BrandSelector, brand.Value, d.cfg.ModelSelector)
			if err != nil || len(models) == 0 {
				d.logSkip("brand", brand.Text, err)
				continue
			}

			for mi, model := range models {
				if ctx.Err() != nil {
					return combos, ctx.Err()
				}
				if mi > 0 {
					if err := d.reestablish(ctx, category.Value, brand.Value); err != nil {
						d.logSkip("model", model.Text, err)
						continue
					}
				}

				fuels, err := d.selectAndRead(ctx, d.cfg.ModelSelector, model.Value, d.cfg.FuelSelector)
				if err != nil || len(fuels) == 0 {
					d.logSkip("model", model.Text, err)
					continue
				}

				for _, fuel := range fuels {
					combos = append(combos, Combination{
						Category: category.Text,
						Brand:    brand.Text,
						Model:    model.Text,
						Fuel:     fuel.Text,
					})
				}

				d.log.Debug().
					Str("category", category.Text).
					Str("brand", brand.Text).
					Str("model", model.Text).
					Int("fuels", len(fuels)).
					Msg("Leaf variants read")
			}
		}
	}

	d.log.Info().
		Int("combinations", len(combos)).
		Int("landing_visits", d.landingVisits).
		Msg("Form traversal complete")

	return combos, nil
}

// LandingVisits returns how many times the landing page was loaded.
func (d *Discoverer) LandingVisits() int {
	return d.landingVisits
}

// visitLanding loads the form at its default state.
func (d *Discoverer) visitLanding(ctx context.Context) error {
	d.landingVisits++
	return d.browser.Navigate(ctx, d.cfg.LandingURL)
}

// reestablish reloads the landing page and reselects the upper levels so
// the next sibling at the current level starts from a known state.
func (d *Discoverer) reestablish(ctx context.Context, categoryValue, brandValue string) error {
	if err := d.visitLanding(ctx); err != nil {
		return err
	}
	if _, err := d.selectAndRead(ctx, d.cfg.CategorySelector, categoryValue, d.cfg.BrandSelector); err != nil {
		return err
	}
	if brandValue != "" {
		if _, err := d.selectAndRead(ctx, d.cfg.BrandSelector, brandValue, d.cfg.ModelSelector); err != nil {
			return err
		}
	}
	return nil
}

// selectAndRead selects value at selectSel, waits for the dependent list at
// readSel to settle, and returns its options. The select itself is retried
// once on element errors; the browser walks the selector preference list.
func (d *Discoverer) selectAndRead(ctx context.Context, selectSel, value, readSel string) ([]DropdownOption, error) {
	opts := helpers.RetryOptions{MaxAttempts: 2, InitialInterval: 200 * time.Millisecond}
	err := helpers.Retry(ctx, opts, apperr.Retryable, func() error {
		return d.browser.Select(ctx, selectSel, value)
	})
	if err != nil {
		return nil, err
	}
	return d.settleAndRead(ctx, readSel)
}

// settleAndRead polls the dependent option list until two consecutive
// non-empty reads agree, bounded by the settle budget. Polling beats a bare
// fixed delay: fast reloads return early, slow ones get the whole budget.
func (d *Discoverer) settleAndRead(ctx context.Context, selector string) ([]DropdownOption, error) {
	interval := d.cfg.SettleDelay / time.Duration(d.cfg.SettlePolls)
	if interval <= 0 {
		interval = time.Millisecond
	}

	var prev []DropdownOption
	for i := 0; i < d.cfg.SettlePolls; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}

		opts, err := d.readOptions(ctx, selector)
		if err != nil {
			return nil, err
		}
		if len(opts) > 0 && optionsEqual(opts, prev) {
			return opts, nil
		}
		prev = opts
	}
	return prev, nil
}

// readOptions reads the option list and drops placeholder entries.
func (d *Discoverer) readOptions(ctx context.Context, selector string) ([]DropdownOption, error) {
	raw, err := d.browser.Options(ctx, selector)
	if err != nil {
		return nil, err
	}
	opts := raw[:0:0]
	for _, o := range raw {
		if isPlaceholder(o) {
			continue
		}
		opts = append(opts, o)
	}
	return opts, nil
}

func (d *Discoverer) logSkip(level, label string, err error) {
	ev := d.log.Warn().Str(level, label)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("Abandoning branch")
}

// isPlaceholder filters the "Select ..." style prompt options the form
// prepends to every list.
func isPlaceholder(o DropdownOption) bool {
	if strings.TrimSpace(o.Value) == "" {
		return true
	}
	text := strings.ToLower(strings.TrimSpace(o.Text))
	return strings.HasPrefix(text, "select") ||
		strings.HasPrefix(text, "choose") ||
		strings.HasPrefix(text, "--")
}

func optionsEqual(a, b []DropdownOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
