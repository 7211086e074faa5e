package main

import (
	"flag"
	"io"
	"os"

	"go-jobquest/internal/browser"
	"go-jobquest/internal/cli"
	"go-jobquest/internal/config"
	"go-jobquest/internal/models"
	"go-jobquest/internal/questions"

	"github.com/playwright-community/playwright-go"
)

const usage = `Usage: fetch-questions <job_url>

Example:
  fetch-questions https://jobs.lever.co/wintermute-trading/a2e875dc-be19-4c4e-b933-951a15528355`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("fetch-questions", flag.ContinueOnError)
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

	var form *models.ApplicationForm
	err = cli.WithPage(ctx, cfg, func(_ *browser.Session, page playwright.Page) error {
		form, err = questions.Fetch(ctx, page, pos[0])
		return err
	})
	if err != nil {
		return cli.Fail(err)
	}

	if err := cli.WriteJSON(stdout, form); err != nil {
		return cli.Fail(err)
	}
	return 0
}
