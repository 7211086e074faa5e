package snapshot

import (
	"fmt"
	"strings"
	"time"

	"go-jobquest/internal/models"
	"go-jobquest/utils"
)

const (
	DateLayout      = "2006-01-02"
	accessedDateKey = "accessed_date"
	jobURLKey       = "job_url"
)

// RenderJob produces the Markdown file written for job on the given day.
func RenderJob(job models.JobListing, accessed time.Time) string {
	fm := FrontMatter{
		{Key: jobURLKey, Value: job.URL},
		{Key: accessedDateKey, Value: accessed.Format(DateLayout)},
		{Key: "company", Value: job.Company},
		{Key: "role", Value: job.Title},
		{Key: "location", Value: job.Location},
	}
	if job.Department != "" {
		fm = append(fm, Field{Key: "department", Value: job.Department})
	}
	if job.EmploymentType != "" {
		fm = append(fm, Field{Key: "employment_type", Value: job.EmploymentType})
	}

	var b strings.Builder
	b.WriteString(fm.Render())
	fmt.Fprintf(&b, "\n# %s\n\n", utils.CleanText(job.Title))

	if job.HasDescription() {
		b.WriteString(*job.Description)
		if !strings.HasSuffix(*job.Description, "\n") {
			b.WriteByte('\n')
		}
	} else {
		fmt.Fprintf(&b, "*Description not available. Visit the [job posting](%s) for full details.*\n", job.URL)
	}
	return b.String()
}

// Normalize drops the accessed_date line so that re-fetching an identical
// posting on another day compares equal.
func Normalize(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, accessedDateKey+":") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
