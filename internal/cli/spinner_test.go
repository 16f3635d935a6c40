package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer against the spinner's render goroutine.
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

func TestWaitSpinnerRendersMessage(t *testing.T) {
	out := &syncBuffer{}
	sp := newWaitSpinner(context.Background(), "Probing repository...")
	sp.out = out

	sp.Start()
	time.Sleep(200 * time.Millisecond)
	sp.Stop()

	if !strings.Contains(out.String(), "Probing repository...") {
		t.Error("spinner output should contain the wait message")
	}
}

func TestWaitSpinnerStopClearsLine(t *testing.T) {
	out := &syncBuffer{}
	sp := newWaitSpinner(context.Background(), "Resolving...")
	sp.out = out

	sp.Start()
	time.Sleep(120 * time.Millisecond)
	sp.Stop()

	if !strings.HasSuffix(out.String(), "\r") {
		t.Error("spinner should leave the cursor at the line start after Stop")
	}
}

func TestWaitSpinnerStopIsIdempotent(t *testing.T) {
	sp := newWaitSpinner(context.Background(), "Downloading...")
	sp.out = &syncBuffer{}

	sp.Start()
	sp.Stop()
	sp.Stop()
}

func TestWaitSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sp := newWaitSpinner(ctx, "Probing repository...")
	sp.out = &syncBuffer{}

	sp.Start()
	cancel()

	select {
	case <-sp.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	if !sp.Cancelled() {
		t.Error("Cancelled() should report true after context cancellation")
	}
}

func TestWaitSpinnerNilContext(t *testing.T) {
	sp := newWaitSpinner(nil, "Resolving...")
	sp.out = &syncBuffer{}
	sp.Start()
	sp.Stop()

	if sp.Cancelled() {
		t.Error("Cancelled() should be false for a normally stopped spinner")
	}
}
