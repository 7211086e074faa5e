package main

import (
	"bytes"
	"testing"

	"go-jobquest/internal/models"
	"go-jobquest/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	opts, _, err := parseArgs([]string{"--fetch-descriptions", "https://jobs.lever.co/acme", "--company", "Acme", "--max-concurrent", "8", "--root", "/tmp/jq"})
	require.NoError(t, err)
	assert.Equal(t, &options{
		url:               "https://jobs.lever.co/acme",
		company:           "Acme",
		fetchDescriptions: true,
		root:              "/tmp/jq",
		maxConcurrent:     8,
	}, opts)
}

func TestRun_MissingURLPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"--company", "Acme"}, &out)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Usage: fetch-jobs <url>")
	assert.Contains(t, out.String(), "-fetch-descriptions")
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	result := models.ScrapingResult{Company: "Acme", Platform: "lever", Jobs: make([]models.JobListing, 4)}
	report := &snapshot.Report{
		SnapshotDir: "job_applications/acme/references/2026-01-05",
		New:         []string{"a"},
		Changed:     []string{"b"},
		Unchanged:   []string{"c", "d"},
		Written:     []string{"x.md", "y.md"},
	}

	printSummary(&out, result, report)
	assert.Equal(t, "✓ Fetched 4 jobs from Acme (lever)\n"+
		"✓ New jobs: 1\n"+
		"✓ Changed jobs: 1\n"+
		"✓ Unchanged (skipped): 2\n"+
		"✓ Written 2 files to: job_applications/acme/references/2026-01-05\n", out.String())
}
