package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"linkedin-insights/internal/logger"

	"github.com/playwright-community/playwright-go"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36"

// PlaywrightFetcher renders pages through headless Chromium. The session
// cookie is injected into the browser context before navigation, so
// authentication is a precondition of the fetch rather than part of the
// target request.
type PlaywrightFetcher struct {
	log           *logger.Logger
	sessionCookie string
	timeout       time.Duration
}

func NewPlaywrightFetcher(sessionCookie string, timeout time.Duration) *PlaywrightFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &PlaywrightFetcher{
		log:           logger.New("Fetcher"),
		sessionCookie: sessionCookie,
		timeout:       timeout,
	}
}

func (f *PlaywrightFetcher) Fetch(ctx context.Context, url string) (*RenderedPage, error) {
	started := time.Now()
	deadline := started.Add(f.timeout)

	pw, err := playwright.Run()
	if err != nil {
		return nil, &Error{Kind: KindNetworkFailure, URL: url, Err: fmt.Errorf("playwright run: %w", err)}
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-blink-features=AutomationControlled",
			"--window-size=1920,1080",
		},
	})
	if err != nil {
		return nil, &Error{Kind: KindNetworkFailure, URL: url, Err: fmt.Errorf("launch: %w", err)}
	}
	defer browser.Close()

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(defaultUserAgent),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		return nil, &Error{Kind: KindNetworkFailure, URL: url, Err: err}
	}

	if err := bctx.AddCookies([]playwright.OptionalCookie{{
		Name:   "li_at",
		Value:  f.sessionCookie,
		Domain: playwright.String(".linkedin.com"),
		Path:   playwright.String("/"),
	}}); err != nil {
		return nil, &Error{Kind: KindAuthRejected, URL: url, Err: fmt.Errorf("seed session cookie: %w", err)}
	}

	page, err := bctx.NewPage()
	if err != nil {
		return nil, &Error{Kind: KindNetworkFailure, URL: url, Err: err}
	}

	_, navErr := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(f.timeout.Milliseconds())),
	})
	if navErr != nil {
		return nil, &Error{Kind: classify(navErr), URL: url, Err: navErr}
	}

	// Interactive state: the document body must be visible within the
	// remaining fetch budget.
	if err := page.Locator("body").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(remainingMs(deadline)),
	}); err != nil {
		return nil, &Error{Kind: classify(err), URL: url, Err: err}
	}

	// Scroll mid-page to trigger lazy content, then give the network a
	// best-effort chance to settle. Failure here is not fatal.
	_, _ = page.Evaluate("() => window.scrollTo(0, document.body.scrollHeight / 2)")
	_ = page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(remainingMs(deadline)),
	})

	if blocked(page.URL()) {
		return nil, &Error{Kind: KindAuthRejected, URL: url, Err: fmt.Errorf("redirected to %s", page.URL())}
	}

	html, err := page.Content()
	if err != nil {
		return nil, &Error{Kind: KindNetworkFailure, URL: url, Err: err}
	}
	title, _ := page.Title()

	f.log.LogDebugf("fetched %s in %v (%d bytes)", url, time.Since(started), len(html))
	return &RenderedPage{URL: url, Title: title, HTML: html, FetchedAt: started.UTC()}, nil
}

func remainingMs(deadline time.Time) float64 {
	ms := float64(time.Until(deadline).Milliseconds())
	if ms < 1 {
		return 1
	}
	return ms
}

// blocked reports whether navigation landed on LinkedIn's auth surface
// instead of the requested page.
func blocked(finalURL string) bool {
	lower := strings.ToLower(finalURL)
	return strings.Contains(lower, "/authwall") ||
		strings.Contains(lower, "/login") ||
		strings.Contains(lower, "/checkpoint")
}

func classify(err error) ErrorKind {
	if err == nil {
		return KindNetworkFailure
	}
	es := strings.ToLower(err.Error())
	if strings.Contains(es, "timeout") || strings.Contains(es, "deadline exceeded") {
		return KindTimeout
	}
	return KindNetworkFailure
}
