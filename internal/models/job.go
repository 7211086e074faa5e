package models

// JobListing is a single posting found on a careers page.
// URL is the identity of a listing across runs.
type JobListing struct {
	Title          string  `json:"title"`
	Location       string  `json:"location,omitempty"`
	URL            string  `json:"url"`
	Description    *string `json:"description,omitempty"` // nil when not fetched
	Department     string  `json:"department,omitempty"`
	EmploymentType string  `json:"employment_type,omitempty"`
	Company        string  `json:"company"`
	Source         string  `json:"source"`
}

// WithDescription returns a copy of the listing carrying desc.
func (j JobListing) WithDescription(desc *string) JobListing {
	j.Description = desc
	return j
}

// HasDescription reports whether a non-empty description is attached.
func (j JobListing) HasDescription() bool {
	return j.Description != nil && *j.Description != ""
}

// ScrapingResult is the outcome of scraping one careers page.
// A failed scrape carries Error and no jobs.
type ScrapingResult struct {
	Company   string       `json:"company"`
	SourceURL string       `json:"source_url"`
	Jobs      []JobListing `json:"jobs"`
	Error     string       `json:"error,omitempty"`
	Platform  string       `json:"platform"`
}

// Failed reports whether the scrape ended in an error.
func (r ScrapingResult) Failed() bool {
	return r.Error != ""
}

// JobDetails is what fetch-job prints for a single posting.
type JobDetails struct {
	Title          string `json:"title"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
	Department     string `json:"department"`
	Company        string `json:"company"`
	Description    string `json:"description"`
}

// FormQuestion is one field of an application form.
type FormQuestion struct {
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	InputType   string   `json:"inputType"`
	Name        string   `json:"name"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder"`
	Options     []string `json:"options,omitempty"`
}

type ApplicationForm struct {
	Questions      []FormQuestion `json:"questions"`
	TotalQuestions int            `json:"totalQuestions"`
	URL            string         `json:"url"`
	FormPreview    string         `json:"formPreview"`
}
