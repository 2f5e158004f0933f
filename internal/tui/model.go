// ABOUTME: Bubbletea model for browsing a student's progress in the terminal.
// ABOUTME: One tab per metric; keys cycle the chart kind and toggle the history.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/render"
	"github.com/harperreed/gymprogress/internal/report"
	"github.com/harperreed/gymprogress/internal/source"
	log "github.com/sirupsen/logrus"
)

const fetchTimeout = 30 * time.Second

// loadedMsg reports the end of a background fetch.
type loadedMsg struct {
	err error
}

var (
	accent = lipgloss.Color("#7C3AED")
	dim    = lipgloss.Color("#6B7280")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(dim).Padding(0, 1)
	dimStyle       = lipgloss.NewStyle().Foreground(dim)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(dim).Padding(0, 1)
)

// Model is the root bubbletea model.
type Model struct {
	view    *report.View
	src     source.Source
	types   []models.MetricType
	focused int
	width   int
	height  int
	loading bool
	status  string
}

// New creates a model over v. When src is non-nil the model fetches on
// start and on every refresh.
func New(v *report.View, src source.Source) Model {
	return Model{
		view:    v,
		src:     src,
		types:   v.MetricTypes(),
		loading: src != nil,
	}
}

// Focused returns the index of the selected metric tab.
func (m Model) Focused() int { return m.focused }

// Current returns the selected metric type, or "" when there is none.
func (m Model) Current() models.MetricType {
	if len(m.types) == 0 {
		return ""
	}
	return m.types[m.focused]
}

// Status returns the last status message.
func (m Model) Status() string { return m.status }

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool { return m.loading }

func (m Model) Init() tea.Cmd {
	if m.src == nil {
		return nil
	}
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	v, src := m.view, m.src
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return loadedMsg{err: v.Load(ctx, src)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			log.Warnf("tui: refresh failed: %v", msg.err)
			m.status = fmt.Sprintf("erro ao atualizar: %v", msg.err)
		} else {
			m.status = "atualizado às " + m.view.LoadedAt().Format("15:04:05")
		}
		m.syncTypes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "right", "l":
		if len(m.types) > 0 {
			m.focused = (m.focused + 1) % len(m.types)
		}
	case "shift+tab", "left":
		if len(m.types) > 0 {
			m.focused = (m.focused - 1 + len(m.types)) % len(m.types)
		}
	case "c":
		if mt := m.Current(); mt != "" {
			st := m.view.CycleChartKind(mt)
			m.status = "gráfico: " + string(st.ChartKind)
		}
	case "h":
		if mt := m.Current(); mt != "" {
			m.view.ToggleHistory(mt)
		}
	case "r":
		if m.src != nil && !m.loading {
			m.loading = true
			m.status = "atualizando..."
			return m, m.fetch()
		}
	}
	return m, nil
}

// syncTypes refreshes the tab list, keeping the selected type when present.
func (m *Model) syncTypes() {
	current := m.Current()
	m.types = m.view.MetricTypes()
	m.focused = 0
	for i, mt := range m.types {
		if mt == current {
			m.focused = i
			break
		}
	}
}

func (m Model) View() string {
	var sb strings.Builder

	title := "Evolução física"
	if m.view.Audience == report.AudienceTrainer && m.view.StudentID != "" {
		title += " · aluno " + m.view.StudentID
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	if len(m.types) == 0 {
		if m.loading {
			sb.WriteString(dimStyle.Render("Carregando medidas..."))
		} else {
			sb.WriteString(dimStyle.Render("Nenhuma medida registrada."))
		}
		sb.WriteString("\n\n")
		sb.WriteString(m.statusBar())
		return sb.String()
	}

	tabs := make([]string, len(m.types))
	for i, mt := range m.types {
		if i == m.focused {
			tabs[i] = activeTabStyle.Render(mt.Label())
		} else {
			tabs[i] = tabStyle.Render(mt.Label())
		}
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n\n")

	mt := m.Current()
	state := m.view.PresentationState(mt)
	sb.WriteString(render.SummaryLine(m.view.Summary(mt)))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("gráfico: " + string(state.ChartKind)))
	sb.WriteString("\n\n")

	cfg := render.DefaultChartConfig()
	if m.width > 20 {
		cfg.Width = m.width - 16
	}
	sb.WriteString(panelStyle.Render(render.Chart(m.view.CurrentRepresentation(mt), mt.Unit(), cfg)))
	sb.WriteString("\n")

	if state.HistoryExpanded {
		sb.WriteString("\n")
		sb.WriteString(titleStyle.Render("Histórico"))
		sb.WriteString("\n")
		sb.WriteString(render.HistoryTable(m.view.History(mt), mt.Unit()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.statusBar())
	return sb.String()
}

func (m Model) statusBar() string {
	hints := "tab:métrica  c:gráfico  h:histórico  r:atualizar  q:sair"
	if m.status == "" {
		return dimStyle.Render(hints)
	}
	style := dimStyle
	if strings.HasPrefix(m.status, "erro") {
		style = errorStyle
	}
	return style.Render(m.status) + dimStyle.Render("  |  "+hints)
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(v *report.View, src source.Source) error {
	p := tea.NewProgram(New(v, src), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
