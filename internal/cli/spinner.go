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

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a status line while a solve runs. It stops by itself
// when the command's context ends.
type Spinner struct {
	message string
	w       io.Writer
	parent  context.Context

	mu      sync.Mutex // guards writes to w
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
	once    sync.Once
}

// newSpinner creates a spinner writing to stderr, keeping stdout clean for
// piped output.
func newSpinner(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	return &Spinner{message: message, w: w, parent: ctx, done: make(chan struct{})}
}

// Start begins the animation.
func (s *Spinner) Start() {
	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel
	s.started = true

	go func() {
		defer close(s.done)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for frame := 0; ; frame++ {
			select {
			case <-ctx.Done():
				s.write("\r" + strings.Repeat(" ", len(s.message)+4) + "\r")
				return
			case <-tick.C:
				icon := styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)])
				s.write(fmt.Sprintf("\r%s %s", icon, StyleDim.Render(s.message)))
			}
		}
	}()
}

func (s *Spinner) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, text)
}

// Stop clears the line and waits for the animation to end. Extra calls, and
// calls before Start, do nothing.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		if !s.started {
			return
		}
		s.cancel()
		<-s.done
	})
}

// StopWithError stops the spinner and prints message as a failure.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the command's context ended, as opposed to
// the spinner being stopped.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
