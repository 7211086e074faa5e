// Package cli holds the plumbing shared by the cmd/ programs.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-jobquest/internal/browser"
	"go-jobquest/internal/config"

	"github.com/playwright-community/playwright-go"
)

// ErrUsage means the command line was wrong; the caller prints usage.
var ErrUsage = errors.New("usage")

// Parse parses fs allowing flags before and after the positional
// arguments, which are returned in order. Exactly want positionals are
// required.
func Parse(fs *flag.FlagSet, args []string, want int) ([]string, error) {
	fs.SetOutput(io.Discard)

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	if len(positional) != want {
		return nil, fmt.Errorf("%w: expected %d argument(s), got %d", ErrUsage, want, len(positional))
	}
	return positional, nil
}

// Usage writes text followed by the flag defaults of fs, if any.
func Usage(w io.Writer, fs *flag.FlagSet, text string) {
	fmt.Fprintln(w, text)
	hasFlags := false
	fs.VisitAll(func(*flag.Flag) { hasFlags = true })
	if hasFlags {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fs.SetOutput(w)
		fs.PrintDefaults()
	}
}

// Fail prints the single-line error shown to users and returns exit code 1.
func Fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// WithPage opens the run's browser, hands fn a fresh page and closes
// everything afterwards.
func WithPage(ctx context.Context, cfg *config.Config, fn func(*browser.Session, playwright.Page) error) error {
	session, err := browser.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("⚠️ Failed to close browser: %v", err)
		}
	}()

	page, err := session.NewPage()
	if err != nil {
		return err
	}
	return fn(session, page)
}

// WriteJSON prints v indented by two spaces.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
