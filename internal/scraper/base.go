// Define an interface for all scrapers
// Detect the ATS platform of a careers URL and dispatch to its scraper

package scraper

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"go-jobquest/internal/models"
	"go-jobquest/internal/scraper/ashby"
	"go-jobquest/internal/scraper/generic"
	"go-jobquest/internal/scraper/greenhouse"
	"go-jobquest/internal/scraper/lever"
	"go-jobquest/utils"

	"github.com/playwright-community/playwright-go"
)

// Scraper defines the interface that all platform scrapers must implement
type Scraper interface {
	//Scrape navigates page to url and returns the postings found there.
	//A board that never renders returns no jobs and no error.
	Scrape(ctx context.Context, page playwright.Page, url, company string) ([]models.JobListing, error)

	//Name is the platform name (lever, greenhouse, ...)
	Name() string
}

type Platform string

const (
	Lever      Platform = "lever"
	Greenhouse Platform = "greenhouse"
	Ashby      Platform = "ashby"
	Workday    Platform = "workday"
	Generic    Platform = "generic"
)

// Detect classifies a careers URL by substring.
func Detect(rawURL string) Platform {
	u := strings.ToLower(rawURL)
	switch {
	case strings.Contains(u, "lever.co"):
		return Lever
	case strings.Contains(u, "greenhouse.io"), strings.Contains(u, "grnh.se"):
		return Greenhouse
	case strings.Contains(u, "ashbyhq.com"):
		return Ashby
	case strings.Contains(u, "myworkdayjobs.com"):
		return Workday
	default:
		return Generic
	}
}

// Registry maps a platform to its scraper. Platforms without an entry,
// Workday included, use the Generic entry.
type Registry map[Platform]Scraper

func DefaultRegistry() Registry {
	return Registry{
		Lever:      lever.NewLeverScraper(),
		Greenhouse: greenhouse.NewGreenhouseScraper(),
		Ashby:      ashby.NewAshbyScraper(),
		Generic:    generic.NewGenericScraper(),
	}
}

func (r Registry) For(p Platform) Scraper {
	if s, ok := r[p]; ok {
		return s
	}
	if s, ok := r[Generic]; ok {
		return s
	}
	return generic.NewGenericScraper()
}

// pathCompanyHosts put the company slug in the first path segment.
var pathCompanyHosts = []string{"lever.co", "greenhouse.io", "ashbyhq.com"}

// InferCompany guesses a company name from a careers URL.
func InferCompany(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return "Unknown"
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	for _, ats := range pathCompanyHosts {
		if host != ats && !strings.HasSuffix(host, "."+ats) {
			continue
		}
		//boards.greenhouse.io/embed/job_board?for=acme
		if company := u.Query().Get("for"); company != "" {
			return company
		}
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if segments[0] != "" && segments[0] != "embed" {
			return segments[0]
		}
	}

	if label, _, _ := strings.Cut(host, "."); label != "" {
		return label
	}
	return "Unknown"
}

type Runner struct {
	registry Registry
	debugger *utils.ScreenShotDebugger
}

// NewRunner with a nil registry uses DefaultRegistry; a nil debugger never
// captures.
func NewRunner(registry Registry, debugger *utils.ScreenShotDebugger) *Runner {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Runner{registry: registry, debugger: debugger}
}

// Run scrapes one careers page. Failures end up in the result's Error with
// no jobs; Run itself never fails.
func (r *Runner) Run(ctx context.Context, page playwright.Page, rawURL, company string) (result models.ScrapingResult) {
	platform := Detect(rawURL)
	if company == "" {
		company = InferCompany(rawURL)
	}

	result = models.ScrapingResult{
		Company:   company,
		SourceURL: rawURL,
		Jobs:      []models.JobListing{},
		Platform:  string(platform),
	}

	defer func() {
		if p := recover(); p != nil {
			result.Jobs = []models.JobListing{}
			result.Error = fmt.Sprintf("scraper panic: %v", p)
		}
	}()

	s := r.registry.For(platform)
	log.Printf("▶️ Platform %s, scraper %s, company %q", platform, s.Name(), company)

	jobs, err := s.Scrape(ctx, page, rawURL, company)
	if err != nil {
		log.Printf("❌ Error running scraper %s: %v", s.Name(), err)
		result.Error = err.Error()
		return result
	}

	if len(jobs) == 0 && r.debugger.Enabled() {
		_, _ = r.debugger.CaptureAndLog(page, "no-jobs-"+company, fmt.Sprintf("No jobs found on %s", rawURL))
	}
	if jobs != nil {
		result.Jobs = jobs
	}
	log.Printf("✅ Scraper %s finished. Found %d jobs.", s.Name(), len(result.Jobs))
	return result
}
