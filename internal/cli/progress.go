package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/handlermap/pkg/export"
)

const barWidth = 30

// exportEventMsg carries one event from the export stream.
type exportEventMsg export.Event

// exportClosedMsg reports that the export stream ended.
type exportClosedMsg struct{}

// exportModel is the bubbletea model showing export progress.
type exportModel struct {
	events    <-chan export.Event
	cancel    context.CancelFunc
	start     time.Time
	processed int
	total     int
	final     export.Event
	finished  bool
	aborted   bool
}

func newExportModel(events <-chan export.Event, cancel context.CancelFunc) exportModel {
	return exportModel{events: events, cancel: cancel, start: time.Now()}
}

// waitForEvent reads the next event from the stream.
func waitForEvent(events <-chan export.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return exportClosedMsg{}
		}
		return exportEventMsg(ev)
	}
}

func (m exportModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m exportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			m.cancel()
			return m, tea.Quit
		}
	case exportEventMsg:
		ev := export.Event(msg)
		if p, total, ok := ev.Counts(); ok {
			m.processed, m.total = p, total
		}
		if ev.Terminal() {
			m.final = ev
			m.finished = true
			return m, tea.Quit
		}
		return m, waitForEvent(m.events)
	case exportClosedMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m exportModel) View() string {
	if m.finished || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Exporting call handlers"))
	b.WriteString("\n\n  ")
	b.WriteString(renderBar(m.processed, m.total, barWidth))
	b.WriteString("  ")
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%d/%d", m.processed, m.total)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s", time.Since(m.start).Round(time.Second))))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("  q: cancel"))
	b.WriteString("\n")
	return b.String()
}

// renderBar draws a progress bar of width cells. An unknown or zero total
// draws an empty bar; processed beyond total fills the bar.
func renderBar(processed, total, width int) string {
	filled := 0
	if total > 0 {
		filled = min(processed*width/total, width)
	}
	return styleBarFilled.Render(strings.Repeat(barFilled, filled)) +
		styleBarEmpty.Render(strings.Repeat(barEmpty, width-filled))
}
