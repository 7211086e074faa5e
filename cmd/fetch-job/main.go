package main

import (
	"flag"
	"io"
	"os"

	"go-jobquest/internal/browser"
	"go-jobquest/internal/cli"
	"go-jobquest/internal/config"
	"go-jobquest/internal/details"
	"go-jobquest/internal/models"

	"github.com/playwright-community/playwright-go"
)

const usage = `Usage: fetch-job <job_url>

Example:
  fetch-job https://jobs.lever.co/wintermute-trading/a2e875dc-be19-4c4e-b933-951a15528355`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("fetch-job", flag.ContinueOnError)
	pos, err := cli.Parse(fs, args, 1)
	if err != nil {
		cli.Usage(stdout, fs, usage)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		return cli.Fail(err)
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	var job *models.JobDetails
	err = cli.WithPage(ctx, cfg, func(_ *browser.Session, page playwright.Page) error {
		job, err = details.Fetch(ctx, page, pos[0])
		return err
	})
	if err != nil {
		return cli.Fail(err)
	}

	if err := cli.WriteJSON(stdout, job); err != nil {
		return cli.Fail(err)
	}
	return 0
}
