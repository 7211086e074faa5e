// Package careers guesses where a company publishes its job openings.
package careers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"go-jobquest/internal/browser"
	"go-jobquest/utils"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/playwright-community/playwright-go"
)

const (
	DefaultSearchURL = "https://html.duckduckgo.com/html/"
	probeTimeout     = 10 * time.Second
	searchTimeout    = 15 * time.Second
)

var ErrNotFound = errors.New("could not find careers page")

var (
	careersWords = []string{"job", "career", "position", "opening"}
	resultHints  = []string{"careers", "jobs", "lever.co", "greenhouse.io", "ashbyhq.com"}
)

type Finder struct {
	page      playwright.Page
	limiter   *utils.HostLimiter
	searchURL string
}

func NewFinder(page playwright.Page, limiter *utils.HostLimiter) *Finder {
	return &Finder{
		page:      page,
		limiter:   limiter,
		searchURL: DefaultSearchURL,
	}
}

// Find probes the usual careers URLs for company and falls back to a web
// search.
func (f *Finder) Find(ctx context.Context, company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", fmt.Errorf("%w: empty company name", ErrNotFound)
	}

	visited := mapset.NewThreadUnsafeSet[string]()
	for _, candidate := range CandidateURLs(company) {
		if !visited.Add(candidate) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		ok, err := f.probe(ctx, candidate)
		if err != nil {
			log.Printf("  ⚠️ %s: %v", candidate, err)
			continue
		}
		if ok {
			return candidate, nil
		}
	}

	log.Printf("🔍 No common careers URL worked for %s, searching the web", company)
	found, err := f.search(ctx, company)
	if err != nil {
		log.Printf("  ⚠️ Search failed: %v", err)
	}
	if found == "" {
		return "", fmt.Errorf("%w for %s", ErrNotFound, company)
	}
	return found, nil
}

func (f *Finder) probe(ctx context.Context, candidate string) (bool, error) {
	if err := f.limiter.WaitURL(ctx, candidate); err != nil {
		return false, err
	}
	resp, err := browser.Goto(f.page, candidate, playwright.WaitUntilStateDomcontentloaded, probeTimeout)
	if err != nil {
		return false, err
	}
	if resp == nil || !resp.Ok() {
		return false, nil
	}

	html, err := f.page.Content()
	if err != nil {
		return false, fmt.Errorf("read page content: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", candidate, err)
	}
	return LooksLikeCareers(doc.Find("body").Text()), nil
}

func (f *Finder) search(ctx context.Context, company string) (string, error) {
	query := url.QueryEscape(company + " careers jobs")
	searchURL := f.searchURL + "?q=" + query
	if err := f.limiter.WaitURL(ctx, searchURL); err != nil {
		return "", err
	}
	if _, err := browser.Goto(f.page, searchURL, playwright.WaitUntilStateDomcontentloaded, searchTimeout); err != nil {
		return "", err
	}

	html, err := f.page.Content()
	if err != nil {
		return "", fmt.Errorf("read search results: %w", err)
	}
	return ParseSearchResults(html, f.page.URL())
}

// CandidateURLs lists the careers locations tried before searching.
func CandidateURLs(company string) []string {
	slug := strings.ToLower(strings.TrimSpace(company))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, ".", "")
	if slug == "" {
		return nil
	}

	return []string{
		"https://" + slug + ".com/careers",
		"https://" + slug + ".com/jobs",
		"https://jobs." + slug + ".com",
		"https://careers." + slug + ".com",
		"https://jobs.lever.co/" + slug,
		"https://jobs.lever.co/" + slug + "-trading",
		"https://boards.greenhouse.io/" + slug,
		"https://jobs.ashbyhq.com/" + slug,
	}
}

func LooksLikeCareers(text string) bool {
	text = strings.ToLower(text)
	for _, w := range careersWords {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// ParseSearchResults returns the first result link that points at a careers
// page or an ATS board. Links back to the search engine are ignored.
func ParseSearchResults(html, pageURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse search results: %w", err)
	}
	searchHost := utils.HostOf(pageURL)

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := utils.ResolveURL(pageURL, a.AttrOr("href", ""))
		target := decodeRedirect(href)
		host := utils.HostOf(target)
		if host == "" || sameSite(host, searchHost) {
			return true
		}
		for _, hint := range resultHints {
			if strings.Contains(target, hint) {
				found = target
				return false
			}
		}
		return true
	})
	return found, nil
}

// decodeRedirect unwraps DuckDuckGo's /l/?uddg=<target> result links.
func decodeRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func sameSite(host, searchHost string) bool {
	if searchHost == "" {
		return false
	}
	root := registrable(searchHost)
	return host == root || strings.HasSuffix(host, "."+root)
}

// registrable keeps the last two labels of host.
func registrable(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}
