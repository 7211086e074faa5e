package telegram

import (
	"testing"

	"go-jobquest/internal/models"
	"go-jobquest/internal/snapshot"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Plain", input: "Acme", expected: "Acme"},
		{name: "Punctuation", input: "Sr. Engineer (Go) - Remote!", expected: "Sr\\. Engineer \\(Go\\) \\- Remote\\!"},
		{name: "Markup characters", input: "*_[]~`>#+=|{}", expected: "\\*\\_\\[\\]\\~\\`\\>\\#\\+\\=\\|\\{\\}"},
		{name: "Backslash", input: `a\b`, expected: `a\\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeMarkdown(tt.input))
		})
	}
}

func TestFormatJob(t *testing.T) {
	job := models.JobListing{
		Title:          "Backend Engineer (Go)",
		Company:        "Acme",
		URL:            "https://jobs.lever.co/acme/1?a=(b)",
		Department:     "Platform",
		EmploymentType: "Full-time",
	}

	expected := "🆕 *Backend Engineer \\(Go\\)*\n" +
		"🏢 Acme\n" +
		"📍 N/A\n" +
		"🧩 Platform\n" +
		"⏱ Full\\-time\n" +
		"🔗 [View Job](https://jobs.lever.co/acme/1?a=(b\\))\n"
	assert.Equal(t, expected, FormatJob(job, snapshot.StatusNew))

	assert.Contains(t, FormatJob(job, snapshot.StatusChanged), "✏️ *Backend")
}

func TestFormatSummary(t *testing.T) {
	result := models.ScrapingResult{
		Company:  "Acme",
		Platform: "lever",
		Jobs:     make([]models.JobListing, 3),
	}
	report := &snapshot.Report{
		New:       []string{"a", "b"},
		Unchanged: []string{"c"},
	}

	expected := "📊 *Acme* \\(lever\\)\n" +
		"Fetched: 3\n" +
		"New: 2\n" +
		"Changed: 0\n" +
		"Unchanged: 1\n" +
		"🔖 Run 1b4e28ba\n"
	assert.Equal(t, expected, FormatSummary("1b4e28ba", result, report))

	result.Error = "timeout."
	summary := FormatSummary("r", result, nil)
	assert.Contains(t, summary, "⚠️ timeout\\.\n")
	assert.NotContains(t, summary, "New:")
}

func TestFormatSummary_Overflow(t *testing.T) {
	report := &snapshot.Report{New: make([]string, maxJobMessages+3)}
	assert.Contains(t, FormatSummary("r", models.ScrapingResult{Company: "Acme"}, report), "3 more not sent\n")
}
