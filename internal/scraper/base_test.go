package scraper

import (
	"context"
	"errors"
	"testing"

	"go-jobquest/internal/models"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{url: "https://jobs.lever.co/wintermute-trading", expected: Lever},
		{url: "https://JOBS.LEVER.CO/acme", expected: Lever},
		{url: "https://boards.greenhouse.io/acme", expected: Greenhouse},
		{url: "https://job-boards.greenhouse.io/acme/jobs/1", expected: Greenhouse},
		{url: "https://grnh.se/abc123", expected: Greenhouse},
		{url: "https://jobs.ashbyhq.com/acme", expected: Ashby},
		{url: "https://acme.wd5.myworkdayjobs.com/en-US/External", expected: Workday},
		{url: "https://acme.com/careers", expected: Generic},
		{url: "", expected: Generic},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.url))
		})
	}
}

func TestDefaultRegistry_For(t *testing.T) {
	reg := DefaultRegistry()

	assert.Equal(t, "lever", reg.For(Detect("https://jobs.lever.co/acme")).Name())
	assert.Equal(t, "greenhouse", reg.For(Detect("https://grnh.se/x")).Name())
	assert.Equal(t, "ashby", reg.For(Detect("https://jobs.ashbyhq.com/acme")).Name())
	assert.Equal(t, "generic", reg.For(Detect("https://acme.com/jobs")).Name())
	assert.Equal(t, "generic", reg.For(Workday).Name(), "workday boards use the generic scraper")
	assert.Equal(t, "generic", reg.For(Platform("smartrecruiters")).Name())
	assert.Equal(t, "generic", Registry{}.For(Lever).Name())
}

func TestInferCompany(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{url: "https://jobs.lever.co/wintermute-trading", expected: "wintermute-trading"},
		{url: "https://boards.greenhouse.io/acme/jobs/42", expected: "acme"},
		{url: "https://boards.greenhouse.io/embed/job_board?for=globex", expected: "globex"},
		{url: "https://jobs.ashbyhq.com/initech", expected: "initech"},
		{url: "https://jobs.lever.co/", expected: "jobs"},
		{url: "https://www.acme.com/careers", expected: "acme"},
		{url: "https://careers.umbrella.io", expected: "careers"},
		{url: "not a url", expected: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferCompany(tt.url))
		})
	}
}

type fakeScraper struct {
	name  string
	jobs  []models.JobListing
	err   error
	panic bool

	gotURL, gotCompany string
}

func (f *fakeScraper) Name() string { return f.name }

func (f *fakeScraper) Scrape(_ context.Context, _ playwright.Page, url, company string) ([]models.JobListing, error) {
	f.gotURL, f.gotCompany = url, company
	if f.panic {
		panic("page crashed")
	}
	return f.jobs, f.err
}

func TestRunner_Run(t *testing.T) {
	lev := &fakeScraper{name: "lever", jobs: []models.JobListing{{Title: "SRE", URL: "https://jobs.lever.co/acme/1"}}}
	runner := NewRunner(Registry{Lever: lev, Generic: &fakeScraper{name: "generic"}}, nil)

	result := runner.Run(context.Background(), nil, "https://jobs.lever.co/acme", "")

	assert.Equal(t, "acme", result.Company)
	assert.Equal(t, "acme", lev.gotCompany)
	assert.Equal(t, "https://jobs.lever.co/acme", result.SourceURL)
	assert.Equal(t, "lever", result.Platform)
	assert.False(t, result.Failed())
	require.Len(t, result.Jobs, 1)
	assert.Equal(t, "SRE", result.Jobs[0].Title)
}

func TestRunner_Run_CompanyOverride(t *testing.T) {
	gen := &fakeScraper{name: "generic"}
	runner := NewRunner(Registry{Generic: gen}, nil)

	result := runner.Run(context.Background(), nil, "https://acme.com/careers", "Acme Corp")

	assert.Equal(t, "Acme Corp", result.Company)
	assert.Equal(t, "Acme Corp", gen.gotCompany)
	assert.Equal(t, "generic", result.Platform)
	assert.NotNil(t, result.Jobs)
	assert.Empty(t, result.Jobs)
}

func TestRunner_Run_ErrorBecomesResult(t *testing.T) {
	gh := &fakeScraper{
		name: "greenhouse",
		jobs: []models.JobListing{{Title: "ignored"}},
		err:  errors.New("navigate https://boards.greenhouse.io/acme: net::ERR_NAME_NOT_RESOLVED"),
	}
	runner := NewRunner(Registry{Greenhouse: gh}, nil)

	result := runner.Run(context.Background(), nil, "https://boards.greenhouse.io/acme", "Acme")

	assert.True(t, result.Failed())
	assert.Contains(t, result.Error, "ERR_NAME_NOT_RESOLVED")
	assert.Empty(t, result.Jobs)
	assert.Equal(t, "greenhouse", result.Platform)
}

func TestRunner_Run_PanicBecomesResult(t *testing.T) {
	runner := NewRunner(Registry{Ashby: &fakeScraper{name: "ashby", panic: true}}, nil)

	result := runner.Run(context.Background(), nil, "https://jobs.ashbyhq.com/acme", "Acme")

	assert.True(t, result.Failed())
	assert.Contains(t, result.Error, "page crashed")
	assert.Empty(t, result.Jobs)
}
