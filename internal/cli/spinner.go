package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// waitSpinner animates on stderr while a repository probe, descriptor
// lookup, or download is in flight. It renders to stderr so that stdout
// stays clean for piped output, and stops when its context is cancelled,
// so Ctrl-C during a slow remote probe clears the line before the command
// reports the interruption.
type waitSpinner struct {
	message string
	out     io.Writer
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	mu      sync.Mutex
}

// newWaitSpinner creates a spinner tied to ctx. A nil ctx is treated as
// context.Background.
func newWaitSpinner(ctx context.Context, message string) *waitSpinner {
	if ctx == nil {
		ctx = context.Background()
	}
	spinCtx, cancel := context.WithCancel(ctx)
	return &waitSpinner{
		message: message,
		out:     os.Stderr,
		parent:  ctx,
		ctx:     spinCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *waitSpinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				s.mu.Lock()
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and clears the line. Safe to call more than once.
func (s *waitSpinner) Stop() {
	s.cancel()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
	s.clearLine()
}

// Cancelled reports whether the parent context ended the wait, as opposed
// to a normal Stop.
func (s *waitSpinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *waitSpinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
