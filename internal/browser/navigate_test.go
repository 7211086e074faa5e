package browser_test

import (
	"context"
	"testing"
	"time"

	"go-jobquest/internal/browser"
	"go-jobquest/internal/browser/browsertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPause(t *testing.T) {
	assert.NoError(t, browser.Pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, browser.Pause(ctx, time.Hour), context.Canceled)
}

func TestNavigateAndWaitForMarker(t *testing.T) {
	page := browsertest.NewPage(t, browsertest.Pages{
		"https://careers.example.com/": `<html><body><div class="posting">Engineer</div></body></html>`,
	})

	resp, err := browser.Navigate(page, "https://careers.example.com/", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, resp.Ok())

	found, err := browser.WaitForMarker(page, ".posting", 2*time.Second)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = browser.WaitForMarker(page, ".opening", 300*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, found, "a missing marker is reported as not found, not as an error")
}
