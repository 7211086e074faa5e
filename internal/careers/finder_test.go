package careers

import (
	"context"
	"testing"

	"go-jobquest/internal/browser/browsertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchHTML = `<html><body>
<a href="/html/?q=globex+jobs">Next page with jobs</a>
<a href="https://duckduckgo.com/">DuckDuckGo</a>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fen.wikipedia.org%2Fwiki%2FGlobex&rut=1">Globex - Wikipedia</a>
</div>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fjobs.lever.co%2Fglobex%3Fteam%3DEng&rut=2">Globex jobs</a>
</div>
<div class="result">
  <a class="result__a" href="https://globex.com/careers">Careers at Globex</a>
</div>
</body></html>`

func TestCandidateURLs(t *testing.T) {
	assert.Equal(t, []string{
		"https://jump-trading.com/careers",
		"https://jump-trading.com/jobs",
		"https://jobs.jump-trading.com",
		"https://careers.jump-trading.com",
		"https://jobs.lever.co/jump-trading",
		"https://jobs.lever.co/jump-trading-trading",
		"https://boards.greenhouse.io/jump-trading",
		"https://jobs.ashbyhq.com/jump-trading",
	}, CandidateURLs(" Jump Trading "))

	assert.Equal(t, "https://acmeio.com/careers", CandidateURLs("Acme.io")[0])
	assert.Empty(t, CandidateURLs("  "))
}

func TestLooksLikeCareers(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{text: "See our open POSITIONS", expected: true},
		{text: "Careers at Acme", expected: true},
		{text: "3 openings", expected: true},
		{text: "Jobs", expected: true},
		{text: "Buy our product", expected: false},
		{text: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, LooksLikeCareers(tt.text))
		})
	}
}

func TestParseSearchResults(t *testing.T) {
	found, err := ParseSearchResults(searchHTML, "https://html.duckduckgo.com/html/?q=Globex+careers+jobs")
	require.NoError(t, err)
	assert.Equal(t, "https://jobs.lever.co/globex?team=Eng", found)

	found, err = ParseSearchResults(`<a href="https://example.com/about">About</a>`, "https://html.duckduckgo.com/html/")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDecodeRedirect(t *testing.T) {
	assert.Equal(t, "https://acme.com/jobs?a=1&b=2",
		decodeRedirect("https://duckduckgo.com/l/?uddg=https%3A%2F%2Facme.com%2Fjobs%3Fa%3D1%26b%3D2&rut=x"))
	assert.Equal(t, "https://acme.com/jobs", decodeRedirect("https://acme.com/jobs"))
}

func TestFinder_Find(t *testing.T) {
	tests := []struct {
		name     string
		company  string
		pages    browsertest.Pages
		expected string
	}{
		{
			name:     "First candidate",
			company:  "Acme",
			pages:    browsertest.Pages{"https://acme.com/careers": `<html><body><h1>Open positions</h1></body></html>`},
			expected: "https://acme.com/careers",
		},
		{
			name:    "Skips pages without careers words",
			company: "Acme",
			pages: browsertest.Pages{
				"https://acme.com/careers": `<html><body>Welcome to Acme</body></html>`,
				"https://acme.com/jobs":    `<html><body>We have 4 openings</body></html>`,
			},
			expected: "https://acme.com/jobs",
		},
		{
			name:     "Search fallback",
			company:  "Globex",
			pages:    browsertest.Pages{DefaultSearchURL + "?q=Globex+careers+jobs": searchHTML},
			expected: "https://jobs.lever.co/globex?team=Eng",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := browsertest.NewPage(t, tt.pages)
			found, err := NewFinder(page, nil).Find(context.Background(), tt.company)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, found)
		})
	}
}

func TestFinder_NotFound(t *testing.T) {
	page := browsertest.NewPage(t, browsertest.Pages{})

	_, err := NewFinder(page, nil).Find(context.Background(), "Initech")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Initech")

	_, err = NewFinder(page, nil).Find(context.Background(), " ")
	require.ErrorIs(t, err, ErrNotFound)
}
