package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphstat/pkg/diameter"
)

const (
	// progressInterval is the minimum time between two forwarded events of
	// the same stage.
	progressInterval = 100 * time.Millisecond

	// logProgressInterval throttles progress lines when no terminal is attached.
	logProgressInterval = 2 * time.Second

	barWidth = 30
)

// Progress view styles
var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	stageStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Width(7)
)

// =============================================================================
// Throttle
// =============================================================================

// throttle forwards diameter events at most once per interval per stage.
// Stage changes and the final event of a stage are always forwarded.
// Events arrive from a single goroutine, so no locking is needed.
type throttle struct {
	every time.Duration
	send  func(diameter.Event)
	last  time.Time
	stage diameter.Stage
	seen  bool
}

func newThrottle(every time.Duration, send func(diameter.Event)) *throttle {
	return &throttle{every: every, send: send}
}

// Report implements diameter.Progress.
func (t *throttle) Report(ev diameter.Event) {
	now := time.Now()
	final := ev.Total > 0 && ev.Done >= ev.Total
	if t.seen && ev.Stage == t.stage && !final && now.Sub(t.last) < t.every {
		return
	}
	t.seen, t.stage, t.last = true, ev.Stage, now
	t.send(ev)
}

// logProgress reports throttled events as debug log lines.
func logProgress(logger *log.Logger) diameter.Progress {
	return newThrottle(logProgressInterval, func(ev diameter.Event) {
		logger.Debug("progress",
			"stage", ev.Stage,
			"done", ev.Done,
			"total", ev.Total,
			"longest", ev.Longest)
	})
}

// =============================================================================
// ProgressModel - Live diameter progress
// =============================================================================

// progressMsg carries one engine event into the model.
type progressMsg diameter.Event

// finishedMsg ends the program once the work returns.
type finishedMsg struct{ err error }

// tickMsg advances the spinner frame and elapsed time.
type tickMsg time.Time

// ProgressModel is the bubbletea model shown while the diameter runs.
type ProgressModel struct {
	Title    string
	Event    diameter.Event
	Seen     bool
	Started  time.Time
	Now      time.Time
	Frame    int
	Finished bool
	Err      error
}

// NewProgressModel creates a progress model.
func NewProgressModel(title string) ProgressModel {
	now := time.Now()
	return ProgressModel{Title: title, Started: now, Now: now}
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m ProgressModel) Init() tea.Cmd {
	return tick()
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.Event = diameter.Event(msg)
		m.Seen = true
	case tickMsg:
		m.Frame++
		m.Now = time.Time(msg)
		if m.Finished {
			return m, nil
		}
		return m, tick()
	case finishedMsg:
		m.Finished = true
		m.Err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m ProgressModel) View() string {
	if m.Finished {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleIconSpinner.Render(spinnerFrames[m.Frame%len(spinnerFrames)]))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(m.Title))
	b.WriteString("  ")

	if !m.Seen {
		b.WriteString(StyleDim.Render("loading"))
		return b.String()
	}

	ev := m.Event
	b.WriteString(stageStyle.Render(ev.Stage.String()))
	if ev.Total > 0 {
		b.WriteString(renderBar(ev.Done, ev.Total, barWidth))
		b.WriteString(" ")
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d/%d", ev.Done, ev.Total)))
	} else {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d", ev.Done)))
	}
	b.WriteString(StyleDim.Render("  longest "))
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%d", ev.Longest)))
	b.WriteString(StyleDim.Render("  " + m.Now.Sub(m.Started).Round(100*time.Millisecond).String()))
	return b.String()
}

// renderBar draws a done/total bar width cells wide.
func renderBar(done, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := width * min(done, total) / total
	return barFullStyle.Render(strings.Repeat("━", filled)) +
		barEmptyStyle.Render(strings.Repeat("━", width-filled))
}

// runWithProgress runs work while drawing a live progress view on w. The
// view ends when work returns or ctx is cancelled; work's error is returned
// either way.
func runWithProgress(ctx context.Context, w io.Writer, title string, work func(diameter.Progress) error) error {
	p := tea.NewProgram(NewProgressModel(title),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)
	th := newThrottle(progressInterval, func(ev diameter.Event) { p.Send(progressMsg(ev)) })

	result := make(chan error, 1)
	go func() {
		err := work(th)
		result <- err
		p.Send(finishedMsg{err: err})
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		loggerFrom(ctx).Debug("progress view failed", "err", err)
	}
	return <-result
}
