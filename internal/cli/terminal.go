package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Spinner frames for animated progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Terminal renders progress lines, redrawing in place when attached to a tty
type Terminal struct {
	out          io.Writer
	IsTerminal   bool
	UseColor     bool
	mu           sync.Mutex
	spinnerIndex int
	startedAt    time.Time
	lastPrinted  int
}

// NewTerminal creates a Terminal writing to f
func NewTerminal(f *os.File) *Terminal {
	isTerminal := term.IsTerminal(int(f.Fd()))
	return &Terminal{
		out:        f,
		IsTerminal: isTerminal,
		UseColor:   isTerminal && !color.NoColor,
		startedAt:  time.Now(),
	}
}

// ClearLine clears the current line (terminal only)
func (t *Terminal) ClearLine() {
	if t.IsTerminal {
		fmt.Fprint(t.out, "\r\033[K")
	}
}

// Spinner returns the next spinner frame
func (t *Terminal) Spinner() string {
	if !t.IsTerminal {
		return ""
	}
	frame := spinnerFrames[t.spinnerIndex]
	t.spinnerIndex = (t.spinnerIndex + 1) % len(spinnerFrames)
	return frame
}

// Progress reports batch progress. It is safe to call from several
// goroutines. Non-terminals get a line every 10 items and at the end.
func (t *Terminal) Progress(current, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current == 0 {
		t.startedAt = time.Now()
	}

	pct := 0
	if total > 0 {
		pct = current * 100 / total
	}

	var eta string
	if current > 0 && current < total {
		elapsed := time.Since(t.startedAt)
		remaining := time.Duration(float64(elapsed) / float64(current) * float64(total-current))
		if s := FormatETA(remaining); s != "" {
			eta = fmt.Sprintf(" (ETA: %s)", s)
		}
	}

	msg := fmt.Sprintf("Analyzing: %d/%d texts (%d%%)%s", current, total, pct, eta)

	if !t.IsTerminal {
		if current == total || current-t.lastPrinted >= 10 {
			t.lastPrinted = current
			fmt.Fprintln(t.out, msg)
		}
		return
	}

	msg = t.Spinner() + " " + msg
	if t.UseColor {
		msg = color.CyanString("%s", msg)
	}
	t.ClearLine()
	fmt.Fprint(t.out, msg)
	if current == total {
		t.ClearLine()
	}
}

// FormatETA formats a duration as a human-readable ETA string
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
