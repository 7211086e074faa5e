package details

import (
	"context"
	"strings"
	"testing"

	"go-jobquest/internal/browser/browsertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longText = strings.Repeat("You will own our ingestion pipeline. ", 5)

var postingHTML = `<html><head>
<meta property="og:site_name" content="Acme Trading">
<script>var tracking = "ignore me";</script>
</head><body>
<div class="posting-headline">
  <h2>Senior   Backend Engineer</h2>
  <div class="posting-categories">
    <div class="location">London</div>
    <div class="team">Engineering –</div>
    <div class="commitment">Full-time</div>
  </div>
</div>
<div class="section page-centered posting-description">
  <p>About the role</p>
  <p>` + longText + `</p>
</div>
</body></html>`

func TestParse_LeverPosting(t *testing.T) {
	job, err := Parse(postingHTML)
	require.NoError(t, err)

	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, "London", job.Location)
	assert.Equal(t, "Full-time", job.EmploymentType)
	assert.Equal(t, "Engineering –", job.Department)
	assert.Equal(t, "Acme Trading", job.Company)
	assert.True(t, strings.HasPrefix(job.Description, "About the role\n"))
	assert.Contains(t, job.Description, "ingestion pipeline")
	assert.NotContains(t, job.Description, "tracking")
}

func TestParse_Fallbacks(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		title       string
		company     string
		description string
	}{
		{
			name:        "Short description falls through to main",
			html:        `<h1>Designer</h1><main><div class="description">Short.</div><p>Whole page</p></main>`,
			title:       "Designer",
			description: "Short.Whole page",
		},
		{
			name:        "Logo text when no site name",
			html:        `<div class="main-header-text-company-logo"> Globex </div><h1>Analyst</h1>`,
			title:       "Analyst",
			company:     "Globex",
			description: "",
		},
		{
			name:        "Attribute match on description class",
			html:        `<h1>SRE</h1><section class="job-description-body">` + longText + `</section>`,
			title:       "SRE",
			description: strings.TrimSpace(longText),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := Parse(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.title, job.Title)
			assert.Equal(t, tt.company, job.Company)
			assert.Equal(t, tt.description, job.Description)
		})
	}
}

func TestFetch(t *testing.T) {
	url := "https://jobs.lever.co/acme/111"
	page := browsertest.NewPage(t, browsertest.Pages{url: postingHTML})

	job, err := Fetch(context.Background(), page, url)
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, "Acme Trading", job.Company)
}
