package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"medcheck/medcheck/errs"

	"github.com/playwright-community/playwright-go"
)

// Fetcher returns the HTML body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// HTTPFetcher is the default fetcher for static pages.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: bad status %d for %s", errs.ErrFetch, resp.StatusCode, pageURL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}
	return string(body), nil
}

// BrowserFetcher renders pages in headless Chromium for sites that build
// their markup with JavaScript.
type BrowserFetcher struct {
	pw      *playwright.Playwright
	timeout time.Duration
}

func NewBrowserFetcher(timeout time.Duration) (*BrowserFetcher, error) {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	return &BrowserFetcher{pw: pw, timeout: timeout}, nil
}

func (f *BrowserFetcher) Close() {
	if f.pw != nil {
		f.pw.Stop()
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	browser, err := f.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(true)})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}
	defer browser.Close()

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}

	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(f.timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}

	content, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}
	return content, nil
}
