package enrich

import (
	"context"
	"log"

	"go-jobquest/internal/models"

	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 5

// Fetcher returns the full description text of one posting.
type Fetcher interface {
	FetchDescription(ctx context.Context, url string) (string, error)
}

// EnrichAll fetches every job's description with at most limit fetches in
// flight. The output has the same order as jobs. A failed fetch leaves that
// job's description nil and never aborts the batch.
func EnrichAll(ctx context.Context, jobs []models.JobListing, fetcher Fetcher, limit int) []models.JobListing {
	if limit < 1 {
		limit = DefaultConcurrency
	}
	log.Printf("📝 Fetching %d descriptions (max %d concurrent)", len(jobs), limit)

	out := make([]models.JobListing, len(jobs))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			desc, err := fetcher.FetchDescription(ctx, job.URL)
			switch {
			case err != nil:
				log.Printf("⚠️ Failed to fetch description for %s: %v", job.URL, err)
				out[i] = job.WithDescription(nil)
			case desc == "":
				out[i] = job.WithDescription(nil)
			default:
				out[i] = job.WithDescription(&desc)
			}
			return nil
		})
	}
	_ = g.Wait()

	fetched := 0
	for _, j := range out {
		if j.HasDescription() {
			fetched++
		}
	}
	log.Printf("📝 Descriptions fetched: %d/%d", fetched, len(jobs))
	return out
}
