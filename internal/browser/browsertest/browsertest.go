// Package browsertest starts a real headless browser whose network is served
// from in-memory HTML fixtures.
package browsertest

import (
	"testing"

	"github.com/playwright-community/playwright-go"
)

// Pages maps a request URL to the HTML served for it. Unknown URLs get 404.
type Pages map[string]string

// NewContext returns a browser context routed to pages. The test is skipped
// in -short mode and when the playwright driver is not installed.
func NewContext(t *testing.T, pages Pages) playwright.BrowserContext {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Skipf("playwright driver not available: %v", err)
	}
	t.Cleanup(func() { _ = pw.Stop() })

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Skipf("chromium not available: %v", err)
	}
	t.Cleanup(func() { _ = browser.Close() })

	bctx, err := browser.NewContext()
	if err != nil {
		t.Fatalf("could not create context: %v", err)
	}
	t.Cleanup(func() { _ = bctx.Close() })

	err = bctx.Route("**/*", func(route playwright.Route) {
		body, ok := pages[route.Request().URL()]
		if !ok {
			_ = route.Fulfill(playwright.RouteFulfillOptions{
				Status: playwright.Int(404),
				Body:   "not found",
			})
			return
		}
		_ = route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(200),
			ContentType: playwright.String("text/html; charset=utf-8"),
			Body:        body,
		})
	})
	if err != nil {
		t.Fatalf("could not route requests: %v", err)
	}
	return bctx
}

// NewPage is NewContext plus one page.
func NewPage(t *testing.T, pages Pages) playwright.Page {
	t.Helper()
	page, err := NewContext(t, pages).NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}
	return page
}
