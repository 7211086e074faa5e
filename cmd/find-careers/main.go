package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go-jobquest/internal/browser"
	"go-jobquest/internal/careers"
	"go-jobquest/internal/cli"
	"go-jobquest/internal/config"
	"go-jobquest/utils"

	"github.com/playwright-community/playwright-go"
)

const usage = `Usage: find-careers "<Company Name>"

Example:
  find-careers "Wintermute"`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("find-careers", flag.ContinueOnError)
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

	var found string
	err = cli.WithPage(ctx, cfg, func(_ *browser.Session, page playwright.Page) error {
		finder := careers.NewFinder(page, utils.NewHostLimiter(cfg.RequestsPerSecond, 1))
		found, err = finder.Find(ctx, pos[0])
		return err
	})
	if err != nil {
		return cli.Fail(err)
	}

	fmt.Fprintln(stdout, found)
	return 0
}
