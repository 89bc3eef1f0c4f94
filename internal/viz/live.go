// Package viz renders training progress in the terminal, either as a live
// bubbletea view or as a static ascii chart after the run.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const (
	chartWidth      = 60
	chartHeight     = 10
	historyCapacity = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// ProgressMsg reports one completed training iteration.
type ProgressMsg struct {
	Iter int
	Loss float64
}

// DoneMsg signals the end of training, with the error if it aborted.
type DoneMsg struct {
	Err error
}

// Model is the live training view. It only displays what the trainer
// reports; pressing q cancels the run through the context wired by the
// caller.
type Model struct {
	total   int
	iter    int
	loss    float64
	history []float64
	start   time.Time
	done    bool
	err     error
	cancel  func()
}

func NewModel(totalIters int, cancel func()) Model {
	return Model{
		total:   totalIters,
		history: make([]float64, 0, historyCapacity),
		start:   time.Now(),
		cancel:  cancel,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case ProgressMsg:
		m.iter = msg.Iter
		m.loss = msg.Loss
		m.history = append(m.history, msg.Loss)
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("PINN TRAINING") + "\n")

	status := "RUNNING"
	if m.done {
		status = "DONE"
		if m.err != nil {
			status = errStyle.Render("ABORTED: " + m.err.Error())
		}
	}
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("loss"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Iteration") + valueStyle.Render(fmt.Sprintf("%d / %d", m.iter, m.total)) + "\n")
	s.WriteString(labelStyle.Render("Loss") + valueStyle.Render(fmt.Sprintf("%.6g", m.loss)) + "\n")
	s.WriteString(labelStyle.Render("Elapsed") + valueStyle.Render(time.Since(m.start).Round(time.Second).String()) + "\n")
	s.WriteString(helpStyle.Render("q: cancel"))
	return s.String()
}

// LossChart renders the final loss history as a static ascii chart.
func LossChart(history []float64) string {
	return LossChartWithCaption(history, "loss")
}

// LossChartWithCaption renders any series as a static ascii chart.
func LossChartWithCaption(data []float64, caption string) string {
	if len(data) < 2 {
		return ""
	}
	if len(data) > historyCapacity {
		data = data[len(data)-historyCapacity:]
	}
	return asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption))
}
