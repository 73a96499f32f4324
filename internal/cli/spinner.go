package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line while a slow call, such as connecting to a
// network store, is running.
type spinner struct {
	w       io.Writer
	message string
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newSpinner(w io.Writer, message string) *spinner {
	return &spinner{
		w:       w,
		message: message,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (s *spinner) start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
			select {
			case <-s.done:
				fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
				return
			case <-ticker.C:
			}
		}
	}()
}

// stop ends the animation and clears the line. It may be called more than
// once.
func (s *spinner) stop() {
	s.once.Do(func() { close(s.done) })
	<-s.stopped
}

// withSpinner runs fn, showing message on stderr while it runs when stderr
// is a terminal.
func withSpinner(ctx context.Context, message string, fn func(context.Context) error) error {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return fn(ctx)
	}
	return spin(ctx, os.Stderr, message, fn)
}

func spin(ctx context.Context, w io.Writer, message string, fn func(context.Context) error) error {
	s := newSpinner(w, message)
	s.start()
	defer s.stop()
	return fn(ctx)
}
