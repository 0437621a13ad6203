package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/idlab-discover/drivescore-cli/internal/ui"
)

// TerminalRegion prints its content to a writer each time it becomes
// visible, or when its content changes while visible. Text already printed
// cannot be taken back, so hiding only suppresses future output.
type TerminalRegion struct {
	writer io.Writer
	frame  func(string) string

	mu      sync.Mutex
	visible bool
	content string
}

// NewTerminalRegion creates a region drawing to w. frame decorates content
// before it is written; nil writes it unchanged.
func NewTerminalRegion(w io.Writer, frame func(string) string) *TerminalRegion {
	if frame == nil {
		frame = func(s string) string { return s }
	}
	return &TerminalRegion{writer: w, frame: frame}
}

func (t *TerminalRegion) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visible {
		return
	}
	t.visible = true
	t.print()
}

func (t *TerminalRegion) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = false
}

func (t *TerminalRegion) SetContent(content string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.content = content
	if t.visible {
		t.print()
	}
}

func (t *TerminalRegion) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// Content returns the last content set.
func (t *TerminalRegion) Content() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.content
}

func (t *TerminalRegion) print() {
	if t.writer == nil || t.content == "" {
		return
	}
	fmt.Fprintln(t.writer, t.frame(strings.TrimRight(t.content, "\n")))
}

// Spinner is the animated part of a loading region.
type Spinner interface {
	Start()
	Stop()
}

// LoadingRegion shows a spinner while visible. When animate is false it
// prints its message once instead, which suits pipes and CI logs.
type LoadingRegion struct {
	writer  io.Writer
	animate bool

	mu      sync.Mutex
	message string
	spinner Spinner
	visible bool

	// newSpinner is swapped in tests.
	newSpinner func(w io.Writer, message string) Spinner
}

// NewLoadingRegion creates a loading indicator drawing to w.
func NewLoadingRegion(w io.Writer, animate bool) *LoadingRegion {
	return &LoadingRegion{
		writer:  w,
		animate: animate,
		newSpinner: func(w io.Writer, message string) Spinner {
			return ui.NewSpinnerTracker(w, message)
		},
	}
}

func (l *LoadingRegion) Show() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.visible {
		return
	}
	l.visible = true
	if l.writer == nil {
		return
	}
	if !l.animate {
		if l.message != "" {
			fmt.Fprintln(l.writer, ui.Dim.Render(l.message))
		}
		return
	}
	l.spinner = l.newSpinner(l.writer, l.message)
	l.spinner.Start()
}

func (l *LoadingRegion) Hide() {
	l.mu.Lock()
	s := l.spinner
	l.spinner = nil
	l.visible = false
	l.mu.Unlock()

	if s != nil {
		s.Stop()
	}
}

// SetContent sets the message shown next to the spinner from the next Show.
func (l *LoadingRegion) SetContent(content string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.message = content
}

func (l *LoadingRegion) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visible
}

// NewTerminalRegions wires the four regions to a terminal. Results go to
// out, the loading indicator and errors to errOut.
func NewTerminalRegions(out, errOut io.Writer, animate bool) Regions {
	return Regions{
		Loading: NewLoadingRegion(errOut, animate),
		Result:  NewTerminalRegion(out, ui.SuccessBox.Render),
		Error:   NewTerminalRegion(errOut, func(s string) string { return ui.ErrorBox.Render(ui.GetCrossMark() + " " + s) }),
		Chart:   NewTerminalRegion(out, ui.Box.Render),
	}
}
