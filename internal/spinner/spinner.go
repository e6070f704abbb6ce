// Package spinner provides a terminal progress indicator for long word counts.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Spinner shows a spinning frame, the number of input units counted so far and
// the unit currently being read.
type Spinner struct {
	frames []string
	delay  time.Duration
	writer io.Writer
	active bool
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	label  string
	units  int
	source string
	wg     sync.WaitGroup
}

// New creates a new spinner writing to writer.
// ctx allows for cancellation of the spinner goroutine.
func New(ctx context.Context, writer io.Writer, label string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		frames: []string{"◜", "◠", "◝", "◞", "◡", "◟"},
		delay:  100 * time.Millisecond,
		writer: writer,
		label:  label,
		ctx:    spinnerCtx,
		cancel: cancel,
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return // already running
	}

	s.active = true

	s.wg.Add(1)
	go s.run()
}

// Stop stops the spinner animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return // not running
	}

	s.active = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()

	if IsTerminal(s.writer) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// Step records that source is the next unit being counted.
// Its signature matches the collector's progress callback.
func (s *Spinner) Step(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units++
	s.source = source
}

// Units returns the number of units recorded by Step.
func (s *Spinner) Units() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units
}

// message renders the current status line; callers hold at least a read lock
func (s *Spinner) message() string {
	if s.units == 0 {
		return s.label
	}
	return fmt.Sprintf("%s (%d): %s", s.label, s.units, s.source)
}

// run is the main spinner loop.
func (s *Spinner) run() {
	defer s.wg.Done()

	frameIndex := 0
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			frame := s.frames[frameIndex%len(s.frames)]
			message := s.message()
			s.mu.RUnlock()

			// clear the rest of the line, paths vary in length
			fmt.Fprintf(s.writer, "\r\033[2K%s %s", frame, message)
			frameIndex++
		}
	}
}

// IsTerminal reports whether w is a terminal file descriptor
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
