package render

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerFrames(t *testing.T) {
	// Verify spinner frames are defined
	assert.Len(t, SpinnerFrames, 10)
	assert.Equal(t, "⠋", SpinnerFrames[0])
}

func TestGetCurrentFrame(t *testing.T) {
	// Test frame retrieval wraps around
	assert.Equal(t, SpinnerFrames[0], GetCurrentFrame(0))
	assert.Equal(t, SpinnerFrames[5], GetCurrentFrame(5))
	assert.Equal(t, SpinnerFrames[0], GetCurrentFrame(10)) // Wraps around
	assert.Equal(t, SpinnerFrames[3], GetCurrentFrame(13)) // Wraps around
}

func TestNewSpinner(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf)

	assert.NotNil(t, spinner)
	assert.Equal(t, &buf, spinner.writer)
	assert.Equal(t, SpinnerFrames, spinner.frames)
	assert.Equal(t, 80*time.Millisecond, spinner.interval)
}

func TestSpinnerSetMessage(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf)

	spinner.SetMessage("Loading...")
	assert.Equal(t, "Loading...", spinner.message)

	spinner.SetMessage("Processing...")
	assert.Equal(t, "Processing...", spinner.message)
}

func TestSpinnerStartStop(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf)
	spinner.SetMessage("Test")

	ctx := context.Background()
	cancel := spinner.Start(ctx)

	// Give the spinner time to render at least one frame
	time.Sleep(100 * time.Millisecond)

	// Cancel the spinner
	cancel()

	// Give time for cleanup
	time.Sleep(50 * time.Millisecond)

	// Verify something was written (spinner frames + message)
	output := buf.String()
	assert.NotEmpty(t, output)
}

func TestSpinnerDoubleStart(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf)

	ctx := context.Background()
	cancel1 := spinner.Start(ctx)

	// Starting again should return a cancel function without starting a new goroutine
	cancel2 := spinner.Start(ctx)

	cancel1()
	cancel2()

	// Give time for cleanup
	time.Sleep(50 * time.Millisecond)
}

func TestSpinnerStopClearsLine(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf)
	spinner.SetMessage("Thinking...")

	stop := spinner.Start(context.Background())
	stop()

	output := buf.String()
	require.NotEmpty(t, output)
	assert.Contains(t, output, "Thinking...")
	assert.True(t, strings.HasSuffix(output, "\r\033[K"))
}

func TestSpinnerStopsWithContext(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf)

	ctx, cancel := context.WithCancel(context.Background())
	stop := spinner.Start(ctx)
	cancel()
	stop()

	spinner.mu.Lock()
	defer spinner.mu.Unlock()
	assert.False(t, spinner.running)
}
