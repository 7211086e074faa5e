package browser

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go-jobquest/internal/config"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightManager owns the driver and one browser process.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewPlaywright(ctx context.Context, headless bool) (*PlaywrightManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

// NewContext opens an isolated browser context carrying cookies.
func (pm *PlaywrightManager) NewContext(userAgent string, cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	opts := playwright.BrowserNewContextOptions{}
	if userAgent != "" {
		opts.UserAgent = playwright.String(userAgent)
	}

	bctx, err := pm.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("new browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := bctx.AddCookies(cookies); err != nil {
			_ = bctx.Close()
			return nil, fmt.Errorf("add cookies: %w", err)
		}
	}
	return bctx, nil
}

func (pm *PlaywrightManager) Close() error {
	var errs []error
	if pm.browser != nil {
		errs = append(errs, pm.browser.Close())
	}
	if pm.pw != nil {
		errs = append(errs, pm.pw.Stop())
	}
	return errors.Join(errs...)
}

// Session is the one browser used for a whole run. Open it once, pass it to
// every operation and Close it on every exit path.
type Session struct {
	manager *PlaywrightManager
	context playwright.BrowserContext
}

func Open(ctx context.Context, cfg *config.Config) (*Session, error) {
	manager, err := NewPlaywright(ctx, cfg.IsHeadless())
	if err != nil {
		return nil, err
	}

	var cookies []playwright.OptionalCookie
	if cfg.CookiesPath != "" {
		cookies, err = LoadCookies(cfg.CookiesPath)
		if err != nil {
			log.Printf("⚠️ Could not load cookies from %s: %v. Continuing.", cfg.CookiesPath, err)
		} else {
			log.Printf("🍪 Loaded %d cookies", len(cookies))
		}
	}

	bctx, err := manager.NewContext(cfg.UserAgent, cookies)
	if err != nil {
		_ = manager.Close()
		return nil, err
	}

	return &Session{manager: manager, context: bctx}, nil
}

// Context is shared by every page of the run.
func (s *Session) Context() playwright.BrowserContext {
	return s.context
}

func (s *Session) NewPage() (playwright.Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("new page: %w", err)
	}
	return page, nil
}

func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.context != nil {
		errs = append(errs, s.context.Close())
	}
	if s.manager != nil {
		errs = append(errs, s.manager.Close())
	}
	return errors.Join(errs...)
}
