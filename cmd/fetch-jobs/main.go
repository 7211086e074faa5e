package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go-jobquest/internal/browser"
	"go-jobquest/internal/cli"
	"go-jobquest/internal/config"
	"go-jobquest/internal/enrich"
	"go-jobquest/internal/models"
	"go-jobquest/internal/scraper"
	"go-jobquest/internal/snapshot"
	"go-jobquest/internal/telegram"
	"go-jobquest/utils"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

const usage = `Usage: fetch-jobs <url> [--company NAME] [--fetch-descriptions] [--root DIR] [--max-concurrent N]

Examples:
  fetch-jobs https://jobs.lever.co/wintermute-trading
  fetch-jobs https://jobs.lever.co/wintermute-trading --company Wintermute --fetch-descriptions`

type options struct {
	url               string
	company           string
	fetchDescriptions bool
	root              string
	maxConcurrent     int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func parseArgs(args []string) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("fetch-jobs", flag.ContinueOnError)
	fs.StringVar(&opts.company, "company", "", "company name (default: inferred from the URL)")
	fs.BoolVar(&opts.fetchDescriptions, "fetch-descriptions", false, "open every posting and store its full description")
	fs.StringVar(&opts.root, "root", "", "directory holding job_applications/ (default: config root_dir)")
	fs.IntVar(&opts.maxConcurrent, "max-concurrent", 0, "parallel description fetches (default: config max_concurrent)")

	pos, err := cli.Parse(fs, args, 1)
	if err != nil {
		return nil, fs, err
	}
	opts.url = pos[0]
	return opts, fs, nil
}

func run(args []string, stdout io.Writer) int {
	opts, fs, err := parseArgs(args)
	if err != nil {
		cli.Usage(stdout, fs, usage)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		return cli.Fail(err)
	}
	if opts.root != "" {
		cfg.RootDir = opts.root
	}
	if opts.maxConcurrent > 0 {
		cfg.MaxConcurrent = opts.maxConcurrent
	}

	runID := uuid.NewString()[:8]
	log.SetPrefix(fmt.Sprintf("[%s] ", runID))
	log.Printf("🚀 Fetching jobs from %s", opts.url)

	ctx, stop := cli.SignalContext()
	defer stop()

	var result models.ScrapingResult
	err = cli.WithPage(ctx, cfg, func(session *browser.Session, page playwright.Page) error {
		result = scrape(ctx, cfg, session, page, opts)
		return nil
	})
	if err != nil {
		return cli.Fail(err)
	}

	report, err := snapshot.NewStore(cfg.RootDir).Save(ctx, result)
	if err != nil {
		if errors.Is(err, snapshot.ErrLocked) {
			return cli.Fail(fmt.Errorf("another fetch-jobs run is writing snapshots for %s: %w", result.Company, err))
		}
		return cli.Fail(err)
	}

	printSummary(stdout, result, report)
	if result.Error != "" {
		fmt.Fprintf(os.Stderr, "⚠ Error: %s\n", result.Error)
	}

	notify(cfg, runID, result, report)
	return 0
}

func scrape(ctx context.Context, cfg *config.Config, session *browser.Session, page playwright.Page, opts *options) models.ScrapingResult {
	debugger := utils.NewScreenShotDebugger(cfg.ScreenshotDir, cfg.DebugScreenshots)
	result := scraper.NewRunner(scraper.DefaultRegistry(), debugger).Run(ctx, page, opts.url, opts.company)

	if opts.fetchDescriptions && len(result.Jobs) > 0 {
		if err := page.Close(); err != nil {
			log.Printf("⚠️ Failed to close listing page: %v", err)
		}
		log.Printf("📄 Fetching %d descriptions, %d at a time", len(result.Jobs), cfg.MaxConcurrent)
		fetcher := enrich.NewPageFetcher(session, utils.NewHostLimiter(cfg.RequestsPerSecond, 1))
		result.Jobs = enrich.EnrichAll(ctx, result.Jobs, fetcher, cfg.MaxConcurrent)
	}
	return result
}

func printSummary(w io.Writer, result models.ScrapingResult, report *snapshot.Report) {
	fmt.Fprintf(w, "✓ Fetched %d jobs from %s (%s)\n", len(result.Jobs), result.Company, result.Platform)
	fmt.Fprintf(w, "✓ New jobs: %d\n", len(report.New))
	fmt.Fprintf(w, "✓ Changed jobs: %d\n", len(report.Changed))
	fmt.Fprintf(w, "✓ Unchanged (skipped): %d\n", len(report.Unchanged))
	fmt.Fprintf(w, "✓ Written %d files to: %s\n", len(report.Written), report.SnapshotDir)
}

// notify is best effort; a Telegram failure never fails the run.
func notify(cfg *config.Config, runID string, result models.ScrapingResult, report *snapshot.Report) {
	if !cfg.TelegramEnabled() || (len(report.Written) == 0 && result.Error == "") {
		return
	}
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return
	}
	if err := bot.NotifyRun(runID, result, report); err != nil {
		log.Printf("⚠️ Failed to send Telegram notification: %v", err)
		return
	}
	log.Println("🤖 Telegram notification sent.")
}
