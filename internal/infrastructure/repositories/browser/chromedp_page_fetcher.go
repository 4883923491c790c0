package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

// contentSelectors is the cascade probed on GitHub releases pages:
// specific release containers first, generic markdown containers next.
// Whole-page text is the last resort when none of them appear.
var contentSelectors = []string{
	"div.release-entry",
	"div.markdown-body",
	"div.Box-body",
	".prose",
	".markdown-body",
}

// selectorWaitTimeout bounds how long a navigation waits for one of the
// content selectors to render before falling back to the body text.
const selectorWaitTimeout = 5 * time.Second

func selectorsLiteral() string {
	literal, err := json.Marshal(contentSelectors)
	if err != nil {
		panic(err)
	}
	return string(literal)
}

func buildExtractScript() string {
	return `(() => {
	const selectors = ` + selectorsLiteral() + `;
	for (const selector of selectors) {
		const nodes = document.querySelectorAll(selector);
		if (nodes.length > 0) {
			return Array.from(nodes).map((node) => node.innerText).join('\n');
		}
	}
	return document.body ? document.body.innerText : '';
})()`
}

func buildSelectorPollScript() string {
	return `(() => {
	const selectors = ` + selectorsLiteral() + `;
	return selectors.some((selector) => document.querySelector(selector) !== null);
})()`
}

// ChromePageFetcher renders pages in a headless browser and extracts
// their visible text. A weighted semaphore of one keeps a single
// navigation in flight, and the rate limiter spaces request starts.
type ChromePageFetcher struct {
	navTimeout time.Duration
	inFlight   *semaphore.Weighted
	limiter    *rate.Limiter
	navigate   func(ctx context.Context, url string) (string, error)

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	stopBrowser context.CancelFunc
}

// NewChromePageFetcher creates a fetcher configured from the scraper
// settings. The browser process is started lazily on first use.
func NewChromePageFetcher(settings *entities.Settings) *ChromePageFetcher {
	interval := time.Minute / time.Duration(settings.Scraper.RequestsPerMinute)
	fetcher := &ChromePageFetcher{
		navTimeout: time.Duration(settings.Scraper.NavigationTimeoutSecs) * time.Second,
		inFlight:   semaphore.NewWeighted(1),
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
	}
	fetcher.navigate = fetcher.renderPage
	return fetcher
}

// FetchText navigates to the URL in a fresh tab and returns the page's
// extracted text. At most one navigation runs at a time, and blocked
// callers are served in the order they arrived.
func (f *ChromePageFetcher) FetchText(ctx context.Context, url string) (string, error) {
	if err := f.inFlight.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire fetch slot: %w", err)
	}
	defer f.inFlight.Release(1)

	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	return f.navigate(ctx, url)
}

func (f *ChromePageFetcher) renderPage(ctx context.Context, url string) (string, error) {
	browserCtx, err := f.ensureBrowser()
	if err != nil {
		return "", err
	}

	tabCtx, closeTab := chromedp.NewContext(browserCtx)
	defer closeTab()

	navCtx, cancelNav := context.WithTimeout(tabCtx, f.navTimeout)
	defer cancelNav()

	// The tab runs under the browser context, so caller cancellation has
	// to be forwarded explicitly.
	stop := context.AfterFunc(ctx, cancelNav)
	defer stop()

	if err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", url, err)
	}

	// Releases content is rendered after the load event. Wait for the
	// selector cascade to appear, but fall back to the body text when
	// the page never produces a known container.
	var found bool
	err = chromedp.Run(navCtx,
		chromedp.Poll(buildSelectorPollScript(), &found,
			chromedp.WithPollingTimeout(selectorWaitTimeout)),
	)
	if err != nil && !errors.Is(err, chromedp.ErrPollingTimeout) {
		return "", fmt.Errorf("failed to render %s: %w", url, err)
	}

	var text string
	if err := chromedp.Run(navCtx,
		chromedp.Evaluate(buildExtractScript(), &text),
	); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", url, err)
	}
	return text, nil
}

// Close shuts down the browser process if one was started.
func (f *ChromePageFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stopBrowser != nil {
		f.stopBrowser()
		f.stopBrowser = nil
	}
	if f.allocCancel != nil {
		f.allocCancel()
		f.allocCancel = nil
	}
	return nil
}

func (f *ChromePageFetcher) ensureBrowser() (context.Context, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browserCtx != nil && f.browserCtx.Err() == nil {
		return f.browserCtx, nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	f.allocCtx, f.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	f.browserCtx, f.stopBrowser = chromedp.NewContext(f.allocCtx)

	// Starting the browser eagerly surfaces a missing Chrome binary here
	// instead of on an arbitrary later navigation.
	if err := chromedp.Run(f.browserCtx); err != nil {
		f.stopBrowser()
		f.allocCancel()
		f.browserCtx, f.stopBrowser = nil, nil
		f.allocCtx, f.allocCancel = nil, nil
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return f.browserCtx, nil
}
