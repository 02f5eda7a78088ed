package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/x/term"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows progress for long-running commands on stderr. It stays silent
// when stderr is not a terminal.
type Spinner struct {
	mu       sync.Mutex
	done     chan struct{}
	stopped  chan struct{}
	interval time.Duration
	enabled  bool
}

// NewSpinner creates a spinner that animates only on an interactive stderr.
func NewSpinner() *Spinner {
	return &Spinner{
		interval: 80 * time.Millisecond,
		enabled:  term.IsTerminal(os.Stderr.Fd()),
	}
}

// Start begins animating title. A running spinner is restarted.
func (s *Spinner) Start(title string) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	go s.run(title, s.done, s.stopped)
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	done, stopped := s.done, s.stopped
	s.done, s.stopped = nil, nil
	s.mu.Unlock()

	if done == nil {
		return
	}
	close(done)
	<-stopped
}

func (s *Spinner) run(title string, done, stopped chan struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(Stderr, "\r%s %s", InfoStyle.Render(spinnerFrames[i%len(spinnerFrames)]), title)
		select {
		case <-done:
			fmt.Fprint(Stderr, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}
