package generic

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go-jobquest/internal/browser"
	"go-jobquest/internal/models"
	"go-jobquest/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

// candidateSelectors are tried in order; later matches overwrite earlier
// ones for the same URL but keep the original position.
var candidateSelectors = []string{
	`a[href*="/job"]`,
	`a[href*="/jobs"]`,
	`a[href*="/position"]`,
	`a[href*="/careers"]`,
	`a[href*="/apply"]`,
	`.job-listing a`,
	`.job-item a`,
	`.position a`,
	`[class*="job"] a`,
}

var navigationRegex = regexp.MustCompile(`(?i)^(Home|About|Contact|Login|Sign|Menu|Back)$`)

const (
	minTitleLength = 6
	settleDelay    = 2 * time.Second
)

type GenericScraper struct {
	settle time.Duration
}

func NewGenericScraper() *GenericScraper {
	return &GenericScraper{settle: settleDelay}
}

func (s *GenericScraper) Name() string {
	return "generic"
}

func (s *GenericScraper) Scrape(ctx context.Context, page playwright.Page, url, company string) ([]models.JobListing, error) {
	log.Printf("📋 Scraping careers page %s (generic)", url)
	if _, err := browser.Navigate(page, url, browser.NavigationTimeout); err != nil {
		return nil, err
	}

	//no marker to wait for: give client-side rendering a moment
	if err := browser.Pause(ctx, s.settle); err != nil {
		return nil, err
	}
	if err := browser.ScrollToBottom(page); err != nil {
		log.Printf("  ⚠️ Scroll failed on %s: %v", url, err)
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("read page content: %w", err)
	}
	return ParseListings(html, page.URL(), url, company)
}

func ParseListings(html, pageURL, source, company string) ([]models.JobListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse careers html: %w", err)
	}

	var order []string
	titles := make(map[string]string)

	for _, sel := range candidateSelectors {
		doc.Find(sel).Each(func(_ int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			url := utils.ResolveURL(pageURL, href)
			title := utils.CleanText(link.Text())
			if url == "" || !looksLikeJobTitle(title) {
				return
			}
			if _, ok := titles[url]; !ok {
				order = append(order, url)
			}
			titles[url] = title
		})
	}

	jobs := make([]models.JobListing, 0, len(order))
	for _, url := range order {
		jobs = append(jobs, models.JobListing{
			Title:   titles[url],
			URL:     url,
			Company: company,
			Source:  source,
		})
	}
	return jobs, nil
}

func looksLikeJobTitle(title string) bool {
	return utf8.RuneCountInString(title) >= minTitleLength && !navigationRegex.MatchString(title)
}
