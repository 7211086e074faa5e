package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go-jobquest/internal/browser"
	"go-jobquest/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

// descriptionSelectors are tried in priority order.
var descriptionSelectors = []string{
	".posting-description",
	".job-description",
	".description",
	`[class*="description"]`,
	"main",
	"article",
	".content",
}

const (
	minDescriptionLength = 201
	descriptionTimeout   = 20 * time.Second
	settleDelay          = time.Second
)

// PageOpener hands out fresh pages; *browser.Session and
// playwright.BrowserContext both qualify.
type PageOpener interface {
	NewPage() (playwright.Page, error)
}

// PageFetcher loads each posting in its own page of the shared browser.
type PageFetcher struct {
	opener  PageOpener
	limiter *utils.HostLimiter
	timeout time.Duration
	settle  time.Duration
}

func NewPageFetcher(opener PageOpener, limiter *utils.HostLimiter) *PageFetcher {
	return &PageFetcher{
		opener:  opener,
		limiter: limiter,
		timeout: descriptionTimeout,
		settle:  settleDelay,
	}
}

func (f *PageFetcher) FetchDescription(ctx context.Context, url string) (string, error) {
	if err := f.limiter.WaitURL(ctx, url); err != nil {
		return "", err
	}

	page, err := f.opener.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	if _, err := browser.Goto(page, url, playwright.WaitUntilStateDomcontentloaded, f.timeout); err != nil {
		return "", err
	}
	if err := browser.Pause(ctx, f.settle); err != nil {
		return "", err
	}

	html, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("read page content: %w", err)
	}
	return ExtractDescription(html)
}

// ExtractDescription returns the text of the first selector holding a
// substantial block of text, else the whole body text.
func ExtractDescription(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse description html: %w", err)
	}
	doc.Find("script, style, noscript, template").Remove()

	for _, sel := range descriptionSelectors {
		text := doc.Find(sel).First().Text()
		if utf8.RuneCountInString(text) >= minDescriptionLength {
			return utils.TidyParagraphs(text), nil
		}
	}
	return utils.TidyParagraphs(doc.Find("body").Text()), nil
}
