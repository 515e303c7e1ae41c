package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinnerStatus(t *testing.T) {
	tests := []struct {
		name  string
		ticks int
		alpha float64
		want  string
	}{
		{"before first frame", 0, 1, "Simulating"},
		{"running", 330, 0.00512, "Simulating tick 330, alpha 0.0051"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSpinner(&bytes.Buffer{}, "Simulating")
			s.Update(tt.ticks, tt.alpha)
			if got := s.status(); got != tt.want {
				t.Errorf("status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpinnerDrawsUpdates(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Simulating")
	s.interval = time.Millisecond
	s.Start()
	s.Update(30, 0.25)
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "tick 30, alpha 0.2500") {
		t.Errorf("output %q does not show progress", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output %q does not end by clearing the line", out)
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Simulating")
	s.Start()
	s.Stop()
	n := buf.Len()
	s.Stop()
	s.StopWithError("cancelled")
	if buf.Len() != n {
		t.Errorf("repeated Stop wrote %d more bytes", buf.Len()-n)
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Simulating")

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that never started")
	}
	if buf.Len() != 0 {
		t.Errorf("Stop without frames wrote %q", buf.String())
	}
}
