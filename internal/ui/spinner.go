package ui

import (
	"fmt"
	"io"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner shows progress for a blocking step such as a data load.
type Spinner struct {
	out     io.Writer
	animate bool
	message string
	stop    chan struct{}
	stopped chan struct{}
}

// NewSpinner returns a spinner writing to out. When animate is false Start
// prints "message..." once and Stop does nothing, so piped output stays clean.
func NewSpinner(out io.Writer, animate bool, message string) *Spinner {
	return &Spinner{out: out, animate: animate, message: message}
}

// Start begins drawing. Each Start must be followed by exactly one Stop.
func (s *Spinner) Start() {
	if !s.animate {
		fmt.Fprintf(s.out, "%s...\n", s.message)
		return
	}
	s.stop = make(chan struct{})
	s.stopped = make(chan struct{})
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.stop:
			fmt.Fprint(s.out, "\r\033[K")
			return
		case <-ticker.C:
			fmt.Fprintf(s.out, "\r%s %s", Accent.Render(spinnerFrames[i%len(spinnerFrames)]), s.message)
		}
	}
}

// Stop erases the spinner line and waits for the drawing goroutine to exit.
func (s *Spinner) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.stopped
	s.stop = nil
}
