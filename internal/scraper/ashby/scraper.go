package ashby

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"go-jobquest/internal/browser"
	"go-jobquest/internal/models"
	"go-jobquest/utils"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/playwright-community/playwright-go"
)

// Marker matches any posting link once the Ashby SPA has rendered.
const Marker = "a[href*='/jobs/']"

var locationRegex = regexp.MustCompile(`(Remote|Hybrid|On-site|[A-Z][a-z]+,\s*[A-Z]{2}|[A-Z][a-z]+\s*-\s*[A-Z][a-z]+)`)

type AshbyScraper struct{}

func NewAshbyScraper() *AshbyScraper {
	return &AshbyScraper{}
}

func (s *AshbyScraper) Name() string {
	return "ashby"
}

func (s *AshbyScraper) Scrape(ctx context.Context, page playwright.Page, url, company string) ([]models.JobListing, error) {
	log.Printf("📋 Scraping Ashby board %s", url)
	if _, err := browser.Navigate(page, url, browser.NavigationTimeout); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	found, err := browser.WaitForMarker(page, Marker, browser.MarkerTimeout)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Printf("  ⚠️ No job links rendered on %s", url)
		return nil, nil
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("read page content: %w", err)
	}
	return ParseListings(html, page.URL(), url, company)
}

// ParseListings keeps the first link seen for each posting URL.
func ParseListings(html, pageURL, source, company string) ([]models.JobListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse ashby html: %w", err)
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	var jobs []models.JobListing
	doc.Find(Marker).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		url := utils.ResolveURL(pageURL, href)
		if url == "" || !seen.Add(url) {
			return
		}

		title := utils.CleanText(link.Text())
		if title == "" {
			return
		}

		jobs = append(jobs, models.JobListing{
			Title:    title,
			Location: guessLocation(link),
			URL:      url,
			Company:  company,
			Source:   source,
		})
	})

	return jobs, nil
}

// guessLocation looks at the text of the nearest enclosing div.
func guessLocation(link *goquery.Selection) string {
	parent := link.Closest("div")
	if parent.Length() == 0 {
		return ""
	}
	return locationRegex.FindString(parent.Text())
}
