package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line while a headless simulation runs. The
// line shows the latest tick count and alpha passed to Update.
type Spinner struct {
	w        io.Writer
	label    string
	interval time.Duration

	mu    sync.Mutex
	ticks int
	alpha float64
	width int // Widest line drawn so far

	started bool
	once    sync.Once
	done    chan struct{}
	stopped chan struct{}
}

// newSpinner returns a spinner drawing on w. It does nothing until Start.
func newSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{
		w:        w,
		label:    label,
		interval: 80 * time.Millisecond,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start begins the animation. Start and Stop are called from the same
// goroutine.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(i)
			}
		}
	}()
}

// Update records simulation progress for the next frame. Its signature
// matches simulate's report callback.
func (s *Spinner) Update(ticks int, alpha float64) {
	s.mu.Lock()
	s.ticks, s.alpha = ticks, alpha
	s.mu.Unlock()
}

func (s *Spinner) draw(frame int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text := s.status()
	s.width = max(s.width, len(text)+2)
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]), StyleDim.Render(text))
}

// status formats the text after the spinner glyph. The caller holds mu.
func (s *Spinner) status() string {
	if s.ticks == 0 {
		return s.label
	}
	return fmt.Sprintf("%s tick %d, alpha %.4f", s.label, s.ticks, s.alpha)
}

// Stop ends the animation and clears the line. Only the first call has
// an effect, so a deferred Stop is safe after StopWithError.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		if s.started {
			<-s.stopped
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.width > 0 {
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		}
	})
}

// StopWithError stops the spinner and prints message as a failure.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
