package ui

import (
	"io"
	"sync"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// SpinnerModel is the Bubble Tea model behind the loading indicator.
type SpinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

// NewSpinnerModel creates a spinner showing message next to it.
func NewSpinnerModel(message string) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	return SpinnerModel{spinner: s, message: message}
}

// Init initializes the model
func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// stopMsg asks the program to clear the spinner line and exit.
type stopMsg struct{}

// Update handles messages
func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the spinner line; it is empty once stopped.
func (m SpinnerModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	line := m.spinner.View()
	if m.message != "" {
		line += " " + Dim.Render(m.message)
	}
	return tea.NewView(line)
}

// SpinnerTracker runs a SpinnerModel in the background so callers can
// toggle it without touching Bubble Tea.
type SpinnerTracker struct {
	writer  io.Writer
	message string

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewSpinnerTracker creates a tracker that draws to w.
func NewSpinnerTracker(w io.Writer, message string) *SpinnerTracker {
	return &SpinnerTracker{writer: w, message: message}
}

// Running reports whether the spinner is currently displayed.
func (st *SpinnerTracker) Running() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.program != nil
}

// Start begins the spinner display. Calling Start while running is a no-op.
func (st *SpinnerTracker) Start() {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.program != nil {
		return
	}

	st.program = tea.NewProgram(NewSpinnerModel(st.message),
		tea.WithOutput(st.writer),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	st.done = make(chan struct{})

	p, done := st.program, st.done
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()
}

// Stop clears the spinner and waits for the program to exit.
func (st *SpinnerTracker) Stop() {
	st.mu.Lock()
	p, done := st.program, st.done
	st.program, st.done = nil, nil
	st.mu.Unlock()

	if p == nil {
		return
	}
	p.Send(stopMsg{})
	<-done
}
