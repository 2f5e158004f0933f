package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/report"
	"github.com/harperreed/gymprogress/internal/series"
	"github.com/harperreed/gymprogress/internal/source"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func testStore() models.Store {
	return models.Store{
		models.MetricWeight: {models.NewSample(1, 80, day(1)), models.NewSample(2, 82, day(10))},
		models.MetricHeight: {models.NewSample(3, 180, day(1))},
	}
}

// update sends msg through Update and returns the updated Model.
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	v := report.NewView(report.AudienceStudent, "")
	m := New(v, source.Static(testStore()))

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected Init to return a fetch command")
	}
	m, _ = update(m, cmd())
	return m
}

func TestInitFetchesAndListsTypes(t *testing.T) {
	m := loadedModel(t)

	if m.Loading() {
		t.Error("expected loading to finish")
	}
	// bmi, height, weight in sorted order
	if len(m.types) != 3 {
		t.Fatalf("expected 3 metric tabs, got %d", len(m.types))
	}
	if m.Current() != models.MetricBMI {
		t.Errorf("expected first tab bmi, got %s", m.Current())
	}
	if !strings.HasPrefix(m.Status(), "atualizado") {
		t.Errorf("unexpected status %q", m.Status())
	}
}

func TestInitWithoutSource(t *testing.T) {
	v := report.NewView(report.AudienceStudent, "")
	m := New(v, nil)
	if m.Init() != nil {
		t.Error("expected no command without a source")
	}
	if !strings.Contains(m.View(), "Nenhuma medida registrada.") {
		t.Error("expected empty-state message")
	}
}

func TestTabNavigationWraps(t *testing.T) {
	m := loadedModel(t)

	m, _ = update(m, key("tab"))
	if m.Focused() != 1 {
		t.Errorf("expected focused=1, got %d", m.Focused())
	}
	m, _ = update(m, key("shift+tab"))
	m, _ = update(m, key("shift+tab"))
	if m.Focused() != 2 {
		t.Errorf("expected wrap to last tab, got %d", m.Focused())
	}
}

func TestCycleChartKindOnlyAffectsCurrentMetric(t *testing.T) {
	m := loadedModel(t)

	m, _ = update(m, key("c"))
	if got := m.view.PresentationState(models.MetricBMI).ChartKind; got != series.ChartBar {
		t.Errorf("expected bmi chart bar, got %s", got)
	}
	if got := m.view.PresentationState(models.MetricWeight).ChartKind; got != series.ChartLine {
		t.Errorf("expected weight chart untouched, got %s", got)
	}
	if m.Status() != "gráfico: bar" {
		t.Errorf("unexpected status %q", m.Status())
	}
}

func TestToggleHistoryShowsTable(t *testing.T) {
	m := loadedModel(t)
	m, _ = update(m, key("tab"))
	m, _ = update(m, key("tab"))

	if strings.Contains(m.View(), "Histórico") {
		t.Error("history should start collapsed")
	}
	m, _ = update(m, key("h"))
	out := m.View()
	if !strings.Contains(out, "Histórico") || !strings.Contains(out, "10/01/2024") {
		t.Errorf("expected expanded history in view:\n%s", out)
	}
}

func TestRefreshKeepsSelectionAndReportsErrors(t *testing.T) {
	calls := 0
	src := source.Func(func(_ context.Context, _ string) (models.Store, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("offline")
		}
		return testStore(), nil
	})

	v := report.NewView(report.AudienceStudent, "")
	m := New(v, src)
	m, _ = update(m, m.Init()())
	m, _ = update(m, key("tab"))
	selected := m.Current()

	m, cmd := update(m, key("r"))
	if cmd == nil || !m.Loading() {
		t.Fatal("expected refresh to start a fetch")
	}
	m, _ = update(m, cmd())

	if m.Current() != selected {
		t.Errorf("expected selection %s to survive refresh, got %s", selected, m.Current())
	}
	if !strings.Contains(m.Status(), "offline") {
		t.Errorf("expected error status, got %q", m.Status())
	}
	if len(m.types) != 3 {
		t.Errorf("expected previous data to be kept, got %d types", len(m.types))
	}
}

func TestQuit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := update(m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestViewShowsTrainerStudent(t *testing.T) {
	v := report.NewView(report.AudienceTrainer, "42")
	m := New(v, source.Static(testStore()))
	m, _ = update(m, m.Init()())
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	out := m.View()
	if !strings.Contains(out, "aluno 42") {
		t.Errorf("expected student id in title:\n%s", out)
	}
	if !strings.Contains(out, "IMC") {
		t.Errorf("expected IMC tab:\n%s", out)
	}
}
