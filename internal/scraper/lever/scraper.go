package lever

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go-jobquest/internal/browser"
	"go-jobquest/internal/models"
	"go-jobquest/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

// Marker is present once a jobs.lever.co board has rendered its postings.
const Marker = ".posting"

type LeverScraper struct{}

func NewLeverScraper() *LeverScraper {
	return &LeverScraper{}
}

func (s *LeverScraper) Name() string {
	return "lever"
}

func (s *LeverScraper) Scrape(ctx context.Context, page playwright.Page, url, company string) ([]models.JobListing, error) {
	log.Printf("📋 Scraping Lever board %s", url)
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
		log.Printf("  ⚠️ No %s elements on %s", Marker, url)
		return nil, nil
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("read page content: %w", err)
	}
	return ParseListings(html, page.URL(), url, company)
}

// ParseListings extracts postings from a rendered Lever board.
func ParseListings(html, pageURL, source, company string) ([]models.JobListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse lever html: %w", err)
	}

	var jobs []models.JobListing
	doc.Find(Marker).Each(func(_ int, posting *goquery.Selection) {
		title := utils.CleanText(posting.Find(".posting-title h5").First().Text())
		href, _ := posting.Find("a.posting-title").First().Attr("href")
		url := utils.ResolveURL(pageURL, href)
		if title == "" || url == "" {
			return
		}

		categories := posting.Find(".posting-categories").First()
		jobs = append(jobs, models.JobListing{
			Title:          title,
			Location:       utils.CleanText(categories.Find(".location").First().Text()),
			URL:            url,
			Department:     utils.CleanText(categories.Find(".department, .team").First().Text()),
			EmploymentType: utils.CleanText(categories.Find(".commitment").First().Text()),
			Company:        company,
			Source:         source,
		})
	})

	return jobs, nil
}
