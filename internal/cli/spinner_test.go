package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testSpinner(ctx context.Context, tty bool) (*Spinner, *syncBuffer) {
	var out syncBuffer
	s := newSpinnerWithContext(ctx, "Rendering hemiciclo legislativo 2024...")
	s.w = &out
	s.tty = tty
	return s, &out
}

func TestSpinnerDrawsOnTerminal(t *testing.T) {
	s, out := testSpinner(context.Background(), true)
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "Rendering hemiciclo legislativo 2024...") {
		t.Errorf("spinner output %q lacks the message", out.String())
	}
}

func TestSpinnerSilentWithoutTerminal(t *testing.T) {
	s, out := testSpinner(context.Background(), false)
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if got := out.String(); got != "" {
		t.Errorf("spinner wrote %q to a non-terminal", got)
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := testSpinner(ctx, false)
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner goroutine did not exit after cancel")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := testSpinner(context.Background(), false)
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithError(t *testing.T) {
	var out bytes.Buffer
	old := stdout
	stdout = &out
	defer func() { stdout = old }()

	s, _ := testSpinner(context.Background(), false)
	s.Start()
	s.StopWithError("Render failed")

	if !strings.Contains(out.String(), "Render failed") {
		t.Errorf("stdout %q lacks the error message", out.String())
	}
}
