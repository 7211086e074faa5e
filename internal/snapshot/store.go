package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"

	"go-jobquest/internal/models"
	"go-jobquest/utils"
)

const (
	applicationsDir = "job_applications"
	referencesDir   = "references"
	lockFile        = ".lock"
	lockRetry       = 200 * time.Millisecond
)

// ErrLocked is returned by Save when another run holds the company's lock.
var ErrLocked = errors.New("another run holds the snapshot lock")

// Status classifies a scraped job against its stored snapshots.
type Status string

const (
	StatusNew       Status = "new"
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
)

// Decision records what happened to one job. Path is empty for unchanged jobs.
type Decision struct {
	Job    models.JobListing
	Status Status
	Path   string
}

// Report lists the titles per status and the files written by one Save.
type Report struct {
	SnapshotDir string
	New         []string
	Changed     []string
	Unchanged   []string
	Written     []string
	Decisions   []Decision
}

// PriorJob is the most recent stored rendition of a job URL.
type PriorJob struct {
	URL     string
	Path    string
	Date    string
	Content string
}

// Store reads and writes the dated snapshot folders of every company.
type Store struct {
	root string
	now  func() time.Time
}

// NewStore roots the snapshot tree at <rootDir>/job_applications.
func NewStore(rootDir string) *Store {
	return &Store{
		root: filepath.Join(rootDir, applicationsDir),
		now:  time.Now,
	}
}

func (s *Store) ReferencesDir(company string) string {
	return filepath.Join(s.root, companySlug(company), referencesDir)
}

func companySlug(company string) string {
	if slug := utils.Slugify(company); slug != "" {
		return slug
	}
	return "unknown"
}

// LoadPrevious indexes every snapshot file under refsDir by job_url.
// Dated folders are visited in ascending order so the latest date wins.
func LoadPrevious(refsDir string) map[string]PriorJob {
	previous := make(map[string]PriorJob)

	dates, err := os.ReadDir(refsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read snapshots in %s: %v", refsDir, err)
		}
		return previous
	}

	for _, date := range dates {
		if !date.IsDir() {
			continue
		}
		dir := filepath.Join(refsDir, date.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			log.Printf("⚠️ Failed to read %s: %v", dir, err)
			continue
		}
		for _, f := range files {
			if f.IsDir() || filepath.Ext(f.Name()) != ".md" {
				continue
			}
			path := filepath.Join(dir, f.Name())
			prior, err := readPrior(path)
			if err != nil {
				log.Printf("⚠️ Skipping %s: %v", path, err)
				continue
			}
			prior.Date = date.Name()
			previous[prior.URL] = prior
		}
	}
	return previous
}

func readPrior(path string) (PriorJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PriorJob{}, err
	}
	content := string(data)
	var url string
	meta, _, err := ParseFrontMatter(content)
	switch {
	case err == nil:
		url = strings.TrimSpace(meta[jobURLKey])
	case errors.Is(err, ErrMalformedMetadata):
		// Older snapshots left quotes in values unescaped.
		scanned, ok := ScanField(content, jobURLKey)
		if !ok {
			return PriorJob{}, err
		}
		url = strings.TrimSpace(scanned)
	default:
		return PriorJob{}, err
	}
	if url == "" {
		return PriorJob{}, fmt.Errorf("%w: missing %s", ErrMalformedMetadata, jobURLKey)
	}
	return PriorJob{URL: url, Path: path, Content: content}, nil
}

// Save classifies each job of result against prior snapshots and writes the
// new and changed ones into today's folder.
func (s *Store) Save(ctx context.Context, result models.ScrapingResult) (*Report, error) {
	refs := s.ReferencesDir(result.Company)
	if err := os.MkdirAll(refs, 0755); err != nil {
		return nil, fmt.Errorf("create references dir: %w", err)
	}

	lock := flock.New(filepath.Join(refs, lockFile))
	locked, err := lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocked, err)
	}
	if !locked {
		return nil, ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Printf("⚠️ Failed to release snapshot lock: %v", err)
		}
	}()

	now := s.now()
	today := filepath.Join(refs, now.Format(DateLayout))
	if err := os.MkdirAll(today, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	previous := LoadPrevious(refs)
	names := claimedNames(today)
	seen := make(map[string]bool, len(result.Jobs))

	report := &Report{SnapshotDir: today}
	for _, job := range result.Jobs {
		if seen[job.URL] {
			continue
		}
		seen[job.URL] = true

		content := RenderJob(job, now)
		status := StatusNew
		prior, ok := previous[job.URL]
		if ok {
			if Normalize(content) == Normalize(prior.Content) {
				report.Unchanged = append(report.Unchanged, job.Title)
				report.Decisions = append(report.Decisions, Decision{Job: job, Status: StatusUnchanged})
				continue
			}
			status = StatusChanged
		}

		name := names.claim(job)
		path := filepath.Join(today, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return report, fmt.Errorf("write %s: %w", path, err)
		}
		if ok && filepath.Dir(prior.Path) == today && prior.Path != path {
			// A retitled job must keep a single file per URL in one folder.
			if err := os.Remove(prior.Path); err != nil && !os.IsNotExist(err) {
				return report, fmt.Errorf("remove superseded %s: %w", prior.Path, err)
			}
			names.release(filepath.Base(prior.Path), job.URL)
		}

		if status == StatusNew {
			report.New = append(report.New, job.Title)
		} else {
			report.Changed = append(report.Changed, job.Title)
		}
		report.Written = append(report.Written, path)
		report.Decisions = append(report.Decisions, Decision{Job: job, Status: status, Path: path})
	}
	return report, nil
}

// fileNames maps filenames in today's folder to the job URL that owns them.
type fileNames map[string]string

// claimedNames reads the files already in today's folder. A file whose owner
// cannot be read keeps its name.
func claimedNames(today string) fileNames {
	names := fileNames{}
	entries, err := os.ReadDir(today)
	if err != nil {
		return names
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		prior, err := readPrior(filepath.Join(today, e.Name()))
		if err != nil {
			names[e.Name()] = ""
			continue
		}
		names[e.Name()] = prior.URL
	}
	return names
}

// claim returns the filename for job, falling back to a URL-hashed name when
// the plain slug belongs to another job.
func (n fileNames) claim(job models.JobListing) string {
	slug := utils.Slugify(job.Title)
	if slug != "" {
		name := slug + ".md"
		if owner, taken := n[name]; !taken || owner == job.URL {
			n[name] = job.URL
			return name
		}
	} else {
		slug = "job"
	}

	name := fmt.Sprintf("%s-%s.md", slug, urlHash(job.URL))
	n[name] = job.URL
	return name
}

// release frees name if job url still owns it.
func (n fileNames) release(name, url string) {
	if n[name] == url {
		delete(n, name)
	}
}

func urlHash(url string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url))[:8]
}
