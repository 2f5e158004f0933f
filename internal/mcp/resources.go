// ABOUTME: MCP resource implementations for the gym progress report.
// ABOUTME: Provides progress://summary, progress://bmi and progress://report resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/render"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	summaryURI = "progress://summary"
	bmiURI     = "progress://bmi"
	reportURI  = "progress://report"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Progress Summary",
		Description: "First and latest value, change and sample count for every metric",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         bmiURI,
		Name:        "BMI Evolution",
		Description: "Derived BMI series with the clinical category of every value",
		MIMEType:    "application/json",
	}, s.handleBMIResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         reportURI,
		Name:        "Progress Report",
		Description: "Markdown report with every metric's summary and history",
		MIMEType:    "text/markdown",
	}, s.handleReportResource)
}

// Resource handlers

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := map[string]interface{}{
		"audience":  s.view.Audience,
		"student":   s.view.StudentID,
		"loaded_at": s.view.LoadedAt().Format(time.RFC3339),
		"metrics":   s.view.Summaries(),
	}
	return jsonResource(summaryURI, result)
}

type bmiEntry struct {
	Date     string  `json:"date"`
	Value    float64 `json:"value"`
	Category string  `json:"category"`
	Tier     string  `json:"tier"`
	Note     string  `json:"note,omitempty"`
}

func (s *Server) handleBMIResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	rows := s.view.History(models.MetricBMI)
	entries := make([]bmiEntry, 0, len(rows))
	for _, r := range rows {
		c := s.view.Classify(r.Value)
		entries = append(entries, bmiEntry{
			Date:     r.DateLabel,
			Value:    r.Value,
			Category: string(c.Category),
			Tier:     string(c.Tier),
			Note:     r.Note,
		})
	}

	result := map[string]interface{}{
		"count":   len(entries),
		"entries": entries,
	}
	if len(entries) > 0 {
		result["current"] = entries[0]
	}
	return jsonResource(bmiURI, result)
}

func (s *Server) handleReportResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	md := render.Markdown(s.view, s.view.MetricTypes(), nil, time.Now())
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      reportURI,
			MIMEType: "text/markdown",
			Text:     md,
		}},
	}, nil
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
