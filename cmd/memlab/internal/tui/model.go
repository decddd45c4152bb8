// Package tui is the interactive memory-profiling screen.
package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/memlab/pkg/display"
	"github.com/go-drift/memlab/pkg/factory"
	"github.com/go-drift/memlab/pkg/sampling"
	"github.com/go-drift/memlab/pkg/screen"
)

type refreshMsg struct{}

// Model drives a screen.Controller from the keyboard. The controller must
// already be mounted; the model never mounts or unmounts it.
type Model struct {
	ctrl     *screen.Controller
	types    []factory.ComponentType
	interval time.Duration

	count   textinput.Model
	spin    spinner.Model
	help    help.Model
	keys    keyMap
	styles  styles
	status  string
	failed  bool
	spinner bool
}

// New returns a model over ctrl that redraws every interval.
func New(ctrl *screen.Controller, interval time.Duration) Model {
	if interval <= 0 {
		interval = sampling.DefaultInterval
	}

	state := ctrl.State()

	count := textinput.New()
	count.Prompt = ""
	count.Placeholder = "count"
	count.CharLimit = 7
	count.Width = 10
	count.SetValue(state.CountInput)
	count.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))

	return Model{
		ctrl:     ctrl,
		types:    ctrl.Types(),
		interval: interval,
		count:    count,
		spin:     sp,
		help:     help.New(),
		keys:     defaultKeys(),
		styles:   defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refresh())
}

func (m Model) refresh() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		spin := m.startSpinner()
		return m, tea.Batch(m.refresh(), spin)

	case spinner.TickMsg:
		if !m.ctrl.State().IsUpdating {
			m.spinner = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevType):
			m.selectType(-1)
			return m, nil
		case key.Matches(msg, m.keys.NextType):
			m.selectType(1)
			return m, nil
		case key.Matches(msg, m.keys.Create):
			m.create()
			spin := m.startSpinner()
			return m, spin
		case key.Matches(msg, m.keys.Remove):
			m.ctrl.Remove()
			m.setStatus("views removed", false)
			return m, nil
		case key.Matches(msg, m.keys.GC):
			if err := m.ctrl.TriggerGC(); err != nil {
				m.setStatus(err.Error(), true)
			} else {
				m.setStatus("collection requested", false)
			}
			return m, nil
		}
		return m.editCount(msg)
	}

	var cmd tea.Cmd
	m.count, cmd = m.count.Update(msg)
	return m, cmd
}

// editCount forwards a key to the count field and rolls it back when the
// controller rejects the result.
func (m Model) editCount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prev := m.count.Value()
	var cmd tea.Cmd
	m.count, cmd = m.count.Update(msg)
	if m.count.Value() != prev && !m.ctrl.SetCountInput(m.count.Value()) {
		m.count.SetValue(prev)
	}
	return m, cmd
}

func (m *Model) selectType(delta int) {
	if len(m.types) == 0 {
		return
	}
	i := slices.Index(m.types, m.ctrl.State().Type)
	i = (i + delta + len(m.types)) % len(m.types)
	if err := m.ctrl.Select(m.types[i]); err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) create() {
	if err := m.ctrl.Create(); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	s := m.ctrl.State()
	// A capped entry rewrites the field to what was actually rendered.
	m.count.SetValue(s.CountInput)
	m.setStatus(fmt.Sprintf("rendering %d × %s", s.RenderedCount, s.Type), false)
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinner || !m.ctrl.State().IsUpdating {
		return nil
	}
	m.spinner = true
	return m.spin.Tick
}

func (m *Model) setStatus(msg string, failed bool) {
	m.status, m.failed = msg, failed
}

func (m Model) View() string {
	s := m.ctrl.State()
	sum := display.Summarize(s)
	st := m.styles

	var b strings.Builder
	b.WriteString(st.title.Render("Memory profiling"))
	b.WriteString("  ")
	b.WriteString(st.platform.Render(display.Platform()))
	if sum.Dirty {
		b.WriteString(" ")
		b.WriteString(st.dirty.Render("DIRTY"))
	}
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(st.label.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Type", st.selected.Render("‹ "+string(s.Type)+" ›"))
	row("Count", m.count.View())
	b.WriteString("\n")

	var panel strings.Builder
	prow := func(label, value string) {
		panel.WriteString(st.label.Render(label))
		panel.WriteString(st.value.Render(value))
		panel.WriteString("\n")
	}
	prow("Rendered", fmt.Sprint(sum.Rendered))
	prow("Samples", fmt.Sprint(sum.Samples))
	prow("Before", sum.Before+" MB")
	prow("After", sum.After+" MB")
	prow("Delta", sum.Delta+" MB")
	prow("Per view", sum.PerView+" KB")
	if s.IsUpdating {
		panel.WriteString(m.spin.View() + " updating…")
	} else {
		panel.WriteString(st.dim.Render("idle"))
	}
	b.WriteString(st.panel.Render(panel.String()))
	b.WriteString("\n")

	if sum.Note != "" {
		b.WriteString(st.dim.Render(sum.Note))
		b.WriteString("\n")
	}
	if m.status != "" {
		style := st.ok
		if m.failed {
			style = st.err
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
