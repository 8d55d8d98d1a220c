package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"batteryspec/worker/internal/scraper"
	"batteryspec/worker/logger"
	apperr "batteryspec/worker/pkg/errors"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// defaultBlockedURLPatterns keeps heavyweight resources off the wire; the
// image src attribute stays in the DOM, so extraction is unaffected.
var defaultBlockedURLPatterns = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg",
	"*.woff", "*.woff2", "*.ttf", "*.otf", "*.mp4", "*.avi",
}

// Options configures the Chrome session.
type Options struct {
	Headless          bool
	NavigationTimeout time.Duration
	UserAgent         string
	// BlockedURLPatterns overrides the default resource-blocking list when
	// non-nil.
	BlockedURLPatterns []string
}

// Chrome drives a single headless Chrome page over the DevTools protocol.
// It implements scraper.Browser and PageFetcher. One page only: probes are
// strictly sequential by design.
type Chrome struct {
	allocCtx      context.Context
	cancelAlloc   context.CancelFunc
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	timeout       time.Duration
	log           *logger.Logger
}

var _ scraper.Browser = (*Chrome)(nil)

// NewChrome launches the browser and applies resource blocking. A launch
// failure is fatal to the run.
func NewChrome(ctx context.Context, opts Options) (*Chrome, error) {
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(opts.UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))

	c := &Chrome{
		allocCtx:      allocCtx,
		cancelAlloc:   cancelAlloc,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		timeout:       opts.NavigationTimeout,
		log:           logger.ForBrowser(),
	}

	blocked := opts.BlockedURLPatterns
	if blocked == nil {
		blocked = defaultBlockedURLPatterns
	}

	if err := chromedp.Run(browserCtx,
		network.Enable(),
		network.SetBlockedURLs(blocked),
	); err != nil {
		c.Close()
		return nil, apperr.NewBrowser("launch", "failed to start Chrome", err)
	}

	c.log.Info().Bool("headless", opts.Headless).Msg("Browser session started")
	return c, nil
}

// Navigate loads url and waits for the document body to be ready.
func (c *Chrome) Navigate(ctx context.Context, url string) error {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	err := chromedp.Run(opCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return apperr.NewNetwork("navigate", fmt.Sprintf("failed to load %s", url), err)
	}
	return nil
}

// Select sets the value of the first select matched by the comma-separated
// preference list and dispatches a bubbling change event so the form's
// dependent-dropdown wiring fires.
func (c *Chrome) Select(ctx context.Context, selector, value string) error {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	var lastErr error
	for _, candidate := range splitSelectors(selector) {
		js := fmt.Sprintf(`(function() {
			const el = document.querySelector(%q);
			if (!el) return false;
			el.value = %q;
			el.dispatchEvent(new Event('change', { bubbles: true }));
			return true;
		})()`, candidate, value)

		var ok bool
		if err := chromedp.Run(opCtx, chromedp.Evaluate(js, &ok)); err != nil {
			lastErr = err
			continue
		}
		if ok {
			return nil
		}
	}
	return apperr.NewDOM("select", fmt.Sprintf("no element matched %q", selector), lastErr)
}

// Options reads the option list of the first select matched by the
// preference list.
func (c *Chrome) Options(ctx context.Context, selector string) ([]scraper.DropdownOption, error) {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	var lastErr error
	for _, candidate := range splitSelectors(selector) {
		js := fmt.Sprintf(`(function() {
			const el = document.querySelector(%q);
			if (!el) return null;
			return Array.from(el.options).map(o => ({
				value: o.value,
				text: (o.textContent || '').trim(),
			}));
		})()`, candidate)

		var opts []scraper.DropdownOption
		if err := chromedp.Run(opCtx, chromedp.Evaluate(js, &opts)); err != nil {
			lastErr = err
			continue
		}
		if opts != nil {
			return opts, nil
		}
	}
	return nil, apperr.NewDOM("options", fmt.Sprintf("no element matched %q", selector), lastErr)
}

// HTML returns the rendered outer HTML of the current page.
func (c *Chrome) HTML(ctx context.Context) (string, error) {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	var html string
	if err := chromedp.Run(opCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", apperr.NewDOM("html", "failed to capture page HTML", err)
	}
	return html, nil
}

// Evaluate runs js in page context and unmarshals the result into out.
func (c *Chrome) Evaluate(ctx context.Context, js string, out interface{}) error {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	if err := chromedp.Run(opCtx, chromedp.Evaluate(js, out)); err != nil {
		return apperr.NewDOM("evaluate", "script evaluation failed", err)
	}
	return nil
}

// Fetch loads url and returns the rendered HTML, satisfying PageFetcher.
func (c *Chrome) Fetch(ctx context.Context, url string) (string, error) {
	if err := c.Navigate(ctx, url); err != nil {
		return "", err
	}
	return c.HTML(ctx)
}

// Close tears down the browser session.
func (c *Chrome) Close() error {
	c.cancelBrowser()
	c.cancelAlloc()
	return nil
}

// opContext bounds a single browser operation with the navigation timeout
// while still honoring cancellation from the caller.
func (c *Chrome) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opCtx, cancelTimeout := context.WithTimeout(c.browserCtx, c.timeout)
	stop := context.AfterFunc(ctx, cancelTimeout)
	return opCtx, func() {
		stop()
		cancelTimeout()
	}
}

// splitSelectors expands a comma-separated selector preference list.
func splitSelectors(selector string) []string {
	parts := strings.Split(selector, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
