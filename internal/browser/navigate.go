package browser

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	NavigationTimeout = 30 * time.Second
	MarkerTimeout     = 10 * time.Second
)

func IsTimeout(err error) bool {
	return errors.Is(err, playwright.ErrTimeout)
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

// Goto navigates once with the given load state.
func Goto(page playwright.Page, url string, state *playwright.WaitUntilState, timeout time.Duration) (playwright.Response, error) {
	resp, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: state,
		Timeout:   millis(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	return resp, nil
}

// Navigate waits for network idle and, if that times out, settles for
// DOMContentLoaded instead.
func Navigate(page playwright.Page, url string, timeout time.Duration) (playwright.Response, error) {
	resp, err := Goto(page, url, playwright.WaitUntilStateNetworkidle, timeout)
	if err == nil {
		return resp, nil
	}
	if !IsTimeout(err) {
		return nil, err
	}

	log.Printf("⏳ networkidle timed out for %s, retrying with domcontentloaded", url)
	return Goto(page, url, playwright.WaitUntilStateDomcontentloaded, timeout)
}

// WaitForMarker reports whether selector shows up within timeout.
// A timeout is not an error.
func WaitForMarker(page playwright.Page, selector string, timeout time.Duration) (bool, error) {
	err := page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		Timeout: millis(timeout),
	})
	switch {
	case err == nil:
		return true, nil
	case IsTimeout(err):
		return false, nil
	default:
		return false, fmt.Errorf("wait for %q: %w", selector, err)
	}
}
