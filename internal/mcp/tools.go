// ABOUTME: MCP tool implementations for the gym progress report.
// ABOUTME: Exposes metric types, representations, history, presentation state and BMI.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/gymprogress/internal/bmi"
	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/presentation"
	"github.com/harperreed/gymprogress/internal/series"
	"github.com/harperreed/gymprogress/internal/source"
	"github.com/harperreed/gymprogress/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_metric_types",
		Description: "List the metric types that currently have samples, including derived BMI",
	}, s.handleGetMetricTypes)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_representation",
		Description: "Get a metric's chart points in ascending date order for a chart kind",
	}, s.handleGetRepresentation)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_history",
		Description: "Get a metric's history rows, newest first",
	}, s.handleGetHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_presentation_state",
		Description: "Get the chart kind and history toggle for one or all metrics",
	}, s.handleGetPresentationState)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "cycle_chart_kind",
		Description: "Advance a metric's chart kind: line, bar, area, pie, radar, composed, then back to line",
	}, s.handleCycleChartKind)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_history",
		Description: "Expand or collapse a metric's history",
	}, s.handleToggleHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "classify_bmi",
		Description: "Classify a BMI value into its clinical category",
	}, s.handleClassifyBMI)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "refresh",
		Description: "Refetch samples from the backend and recompute derived BMI",
	}, s.handleRefresh)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_sample",
		Description: "Record a measurement (weight, height, arm, leg, waist, body_fat) in local storage",
	}, s.handleAddSample)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_sample",
		Description: "Delete a stored measurement by ID",
	}, s.handleDeleteSample)
}

// Tool input/output types

type emptyInput struct{}

type metricInput struct {
	MetricType string `json:"metric_type" jsonschema:"Metric type key, e.g. weight, height, waist, bmi"`
}

type metricTypeInfo struct {
	MetricType string `json:"metric_type"`
	Label      string `json:"label"`
	Unit       string `json:"unit,omitempty"`
	Count      int    `json:"count"`
}

type metricTypesOutput struct {
	Types []metricTypeInfo `json:"types"`
}

type representationInput struct {
	MetricType string `json:"metric_type" jsonschema:"Metric type key"`
	ChartKind  string `json:"chart_kind,omitempty" jsonschema:"Chart kind (line, bar, area, pie, radar, composed); defaults to the metric's current kind"`
}

// Timestamps are sent as RFC3339 strings to keep the output schemas plain.

type pointOutput struct {
	DateLabel  string  `json:"date_label"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	RecordedAt string  `json:"recorded_at"`
}

type representationOutput struct {
	MetricType string        `json:"metric_type"`
	ChartKind  string        `json:"chart_kind"`
	Points     []pointOutput `json:"points"`
}

type historyRowOutput struct {
	ID         int64   `json:"id"`
	DateLabel  string  `json:"date_label"`
	Value      float64 `json:"value"`
	Note       string  `json:"note,omitempty"`
	RecordedAt string  `json:"recorded_at"`
	Derived    bool    `json:"derived,omitempty"`
}

type historyInput struct {
	MetricType string `json:"metric_type" jsonschema:"Metric type key"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max rows (0 for all)"`
}

type historyOutput struct {
	MetricType string             `json:"metric_type"`
	Rows       []historyRowOutput `json:"rows"`
}

type stateInput struct {
	MetricType string `json:"metric_type,omitempty" jsonschema:"Metric type key; omit for every present metric"`
}

type stateOutput struct {
	States map[string]presentation.State `json:"states"`
}

type classifyInput struct {
	Value string `json:"value" jsonschema:"BMI value; a comma decimal separator is accepted"`
}

type classifyOutput struct {
	Value    string `json:"value"`
	Category string `json:"category"`
	Tier     string `json:"tier"`
}

type refreshOutput struct {
	Types    int    `json:"types"`
	LoadedAt string `json:"loaded_at"`
	Message  string `json:"message"`
}

type addSampleInput struct {
	MetricType string  `json:"metric_type" jsonschema:"Metric type (weight, height, arm, leg, waist, body_fat)"`
	Value      float64 `json:"value" jsonschema:"The measured value"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"Date or timestamp (2006-01-02, RFC3339 or dd/mm/yyyy), defaults to now"`
	Note       string  `json:"note,omitempty" jsonschema:"Optional note"`
}

type sampleOutput struct {
	ID         int64   `json:"id"`
	MetricType string  `json:"metric_type"`
	Value      float64 `json:"value"`
	Message    string  `json:"message"`
}

type deleteSampleInput struct {
	ID int64 `json:"id" jsonschema:"Sample ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleGetMetricTypes(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, metricTypesOutput, error) {
	types := s.view.MetricTypes()
	out := metricTypesOutput{Types: make([]metricTypeInfo, 0, len(types))}
	for _, mt := range types {
		out.Types = append(out.Types, metricTypeInfo{
			MetricType: string(mt),
			Label:      mt.Label(),
			Unit:       mt.Unit(),
			Count:      len(s.view.Samples(mt)),
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetRepresentation(ctx context.Context, req *mcp.CallToolRequest, input representationInput) (*mcp.CallToolResult, representationOutput, error) {
	mt, err := parseMetric(input.MetricType)
	if err != nil {
		return nil, representationOutput{}, err
	}

	var rep series.Representation
	if input.ChartKind == "" {
		rep = s.view.CurrentRepresentation(mt)
	} else {
		kind, err := series.ParseChartKind(input.ChartKind)
		if err != nil {
			return nil, representationOutput{}, err
		}
		rep = s.view.Representation(mt, kind)
	}

	points := make([]pointOutput, len(rep.Points))
	for i, p := range rep.Points {
		points[i] = pointOutput{
			DateLabel:  p.DateLabel,
			Label:      p.Label,
			Value:      p.Value,
			RecordedAt: p.RecordedAt.Format(time.RFC3339),
		}
	}

	return nil, representationOutput{
		MetricType: string(mt),
		ChartKind:  string(rep.Kind),
		Points:     points,
	}, nil
}

func (s *Server) handleGetHistory(ctx context.Context, req *mcp.CallToolRequest, input historyInput) (*mcp.CallToolResult, historyOutput, error) {
	mt, err := parseMetric(input.MetricType)
	if err != nil {
		return nil, historyOutput{}, err
	}

	rows := s.view.History(mt)
	if input.Limit > 0 && len(rows) > input.Limit {
		rows = rows[:input.Limit]
	}
	out := historyOutput{MetricType: string(mt), Rows: make([]historyRowOutput, len(rows))}
	for i, r := range rows {
		out.Rows[i] = historyRowOutput{
			ID:         r.ID,
			DateLabel:  r.DateLabel,
			Value:      r.Value,
			Note:       r.Note,
			RecordedAt: r.RecordedAt.Format(time.RFC3339),
			Derived:    r.ID == 0,
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetPresentationState(ctx context.Context, req *mcp.CallToolRequest, input stateInput) (*mcp.CallToolResult, stateOutput, error) {
	out := stateOutput{States: make(map[string]presentation.State)}

	if input.MetricType != "" {
		mt, err := parseMetric(input.MetricType)
		if err != nil {
			return nil, stateOutput{}, err
		}
		out.States[string(mt)] = s.view.PresentationState(mt)
		return nil, out, nil
	}

	for _, mt := range s.view.MetricTypes() {
		out.States[string(mt)] = s.view.PresentationState(mt)
	}
	return nil, out, nil
}

func (s *Server) handleCycleChartKind(ctx context.Context, req *mcp.CallToolRequest, input metricInput) (*mcp.CallToolResult, stateOutput, error) {
	mt, err := parseMetric(input.MetricType)
	if err != nil {
		return nil, stateOutput{}, err
	}
	st := s.view.CycleChartKind(mt)
	return nil, stateOutput{States: map[string]presentation.State{string(mt): st}}, nil
}

func (s *Server) handleToggleHistory(ctx context.Context, req *mcp.CallToolRequest, input metricInput) (*mcp.CallToolResult, stateOutput, error) {
	mt, err := parseMetric(input.MetricType)
	if err != nil {
		return nil, stateOutput{}, err
	}
	st := s.view.ToggleHistory(mt)
	return nil, stateOutput{States: map[string]presentation.State{string(mt): st}}, nil
}

func (s *Server) handleClassifyBMI(ctx context.Context, req *mcp.CallToolRequest, input classifyInput) (*mcp.CallToolResult, classifyOutput, error) {
	c := bmi.ClassifyString(input.Value)
	return nil, classifyOutput{
		Value:    input.Value,
		Category: string(c.Category),
		Tier:     string(c.Tier),
	}, nil
}

func (s *Server) handleRefresh(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, refreshOutput, error) {
	if s.src == nil {
		return nil, refreshOutput{}, fmt.Errorf("refresh: no source configured")
	}
	if err := s.reload(ctx); err != nil {
		return nil, refreshOutput{}, fmt.Errorf("refresh: %w", err)
	}

	types := s.view.MetricTypes()
	return nil, refreshOutput{
		Types:    len(types),
		LoadedAt: s.view.LoadedAt().Format(time.RFC3339),
		Message:  fmt.Sprintf("Loaded %d metric types", len(types)),
	}, nil
}

func (s *Server) handleAddSample(ctx context.Context, req *mcp.CallToolRequest, input addSampleInput) (*mcp.CallToolResult, sampleOutput, error) {
	if s.repo == nil {
		return nil, sampleOutput{}, fmt.Errorf("add sample: backend is read-only")
	}

	mt := models.ParseMetricType(input.MetricType)
	if !mt.IsKnown() {
		return nil, sampleOutput{}, fmt.Errorf("unknown metric type: %s", input.MetricType)
	}
	if mt == models.MetricBMI {
		return nil, sampleOutput{}, fmt.Errorf("bmi is derived from weight and height and cannot be added")
	}

	recordedAt := time.Now()
	if input.RecordedAt != "" {
		t, err := source.ParseDate(input.RecordedAt, time.Local)
		if err != nil {
			return nil, sampleOutput{}, fmt.Errorf("invalid recorded_at: %w", err)
		}
		recordedAt = t
	}

	r := storage.NewRecord(mt, input.Value, recordedAt)
	if input.Note != "" {
		r.Sample = r.WithNote(input.Note)
	}
	if err := s.repo.CreateSample(r); err != nil {
		return nil, sampleOutput{}, fmt.Errorf("failed to create sample: %w", err)
	}
	if err := s.reload(ctx); err != nil {
		return nil, sampleOutput{}, fmt.Errorf("reload after add: %w", err)
	}

	return nil, sampleOutput{
		ID:         r.ID,
		MetricType: string(mt),
		Value:      r.Value,
		Message:    fmt.Sprintf("Added %s: %.2f %s (ID: %d)", mt.Label(), r.Value, mt.Unit(), r.ID),
	}, nil
}

func (s *Server) handleDeleteSample(ctx context.Context, req *mcp.CallToolRequest, input deleteSampleInput) (*mcp.CallToolResult, simpleOutput, error) {
	if s.repo == nil {
		return nil, simpleOutput{}, fmt.Errorf("delete sample: backend is read-only")
	}
	if err := s.repo.DeleteSample(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete sample: %w", err)
	}
	if err := s.reload(ctx); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("reload after delete: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted sample: %d", input.ID),
	}, nil
}

func parseMetric(s string) (models.MetricType, error) {
	mt := models.ParseMetricType(s)
	if strings.TrimSpace(string(mt)) == "" {
		return "", fmt.Errorf("metric_type is required")
	}
	return mt, nil
}
