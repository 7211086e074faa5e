package browser

import (
	"context"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Pause waits for d or until ctx is done.
func Pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ScrollToBottom triggers lazy-loaded listings.
func ScrollToBottom(page playwright.Page) error {
	_, err := page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
	return err
}
