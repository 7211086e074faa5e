package greenhouse

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

// Marker is one row of a boards.greenhouse.io job board.
const Marker = ".opening"

type GreenhouseScraper struct{}

func NewGreenhouseScraper() *GreenhouseScraper {
	return &GreenhouseScraper{}
}

func (s *GreenhouseScraper) Name() string {
	return "greenhouse"
}

func (s *GreenhouseScraper) Scrape(ctx context.Context, page playwright.Page, url, company string) ([]models.JobListing, error) {
	log.Printf("📋 Scraping Greenhouse board %s", url)
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
		log.Printf("  ⚠️ No %s rows on %s", Marker, url)
		return nil, nil
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
		return nil, fmt.Errorf("parse greenhouse html: %w", err)
	}

	var jobs []models.JobListing
	doc.Find(Marker).Each(func(_ int, opening *goquery.Selection) {
		link := opening.Find("a").First()
		href, _ := link.Attr("href")
		title := utils.CleanText(link.Text())
		url := utils.ResolveURL(pageURL, href)
		if title == "" || url == "" {
			return
		}

		jobs = append(jobs, models.JobListing{
			Title:    title,
			Location: utils.CleanText(opening.Find(".location").First().Text()),
			URL:      url,
			Company:  company,
			Source:   source,
		})
	})

	return jobs, nil
}
