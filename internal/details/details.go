// Package details reads the metadata and description of one job posting.
package details

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"go-jobquest/internal/browser"
	"go-jobquest/internal/models"
	"go-jobquest/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

var descriptionSelectors = []string{
	".posting-description",
	".description",
	".content.description",
	`[class*="description"]`,
}

const (
	titleSelector        = ".posting-headline h2, h1"
	locationSelector     = ".location, .posting-categories .location"
	typeSelector         = ".commitment, .posting-categories .commitment"
	teamSelector         = ".team, .posting-categories .team"
	companySelector      = `.main-header-text-company-logo, meta[property="og:site_name"]`
	fallbackSelector     = "main, .posting-page, .job-posting"
	minDescriptionLength = 101
)

// Fetch opens url in page and extracts the posting.
func Fetch(ctx context.Context, page playwright.Page, url string) (*models.JobDetails, error) {
	log.Printf("🔎 Fetching job %s", url)
	if _, err := browser.Navigate(page, url, browser.NavigationTimeout); err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: read page content: %w", err)
	}
	job, err := Parse(html)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}
	return job, nil
}

// Parse extracts JobDetails from a rendered posting page. Missing fields are
// left empty.
func Parse(html string) (*models.JobDetails, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse job html: %w", err)
	}
	doc.Find("script, style, noscript, template").Remove()

	return &models.JobDetails{
		Title:          firstText(doc, titleSelector),
		Location:       firstText(doc, locationSelector),
		EmploymentType: firstText(doc, typeSelector),
		Department:     firstText(doc, teamSelector),
		Company:        company(doc),
		Description:    description(doc),
	}, nil
}

func firstText(doc *goquery.Document, selector string) string {
	return utils.CleanText(doc.Find(selector).First().Text())
}

// company takes whichever of the logo text or og:site_name comes first.
func company(doc *goquery.Document) string {
	el := doc.Find(companySelector).First()
	if content, ok := el.Attr("content"); ok && strings.TrimSpace(content) != "" {
		return utils.CleanText(content)
	}
	return utils.CleanText(el.Text())
}

func description(doc *goquery.Document) string {
	for _, sel := range descriptionSelectors {
		text := doc.Find(sel).First().Text()
		if utf8.RuneCountInString(text) >= minDescriptionLength {
			return utils.TidyText(text)
		}
	}
	return utils.TidyText(doc.Find(fallbackSelector).First().Text())
}
