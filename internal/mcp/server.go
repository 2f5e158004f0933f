// ABOUTME: MCP server setup for the gym progress report.
// ABOUTME: Wraps MCP server around a report view, its source and optional storage.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/gymprogress/internal/report"
	"github.com/harperreed/gymprogress/internal/source"
	"github.com/harperreed/gymprogress/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with report and storage access.
type Server struct {
	mcpServer *mcp.Server
	view      *report.View
	src       source.Source
	// repo is nil for read-only backends; write tools then fail.
	repo storage.Repository
}

// NewServer creates a new MCP server over view. src is used by refresh and
// after writes; repo enables add_sample and delete_sample.
func NewServer(view *report.View, src source.Source, repo storage.Repository) (*Server, error) {
	if view == nil {
		return nil, fmt.Errorf("new mcp server: nil view")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "gymprogress",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		view:      view,
		src:       src,
		repo:      repo,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// reload refetches from the source when there is one.
func (s *Server) reload(ctx context.Context) error {
	if s.src == nil {
		return nil
	}
	return s.view.Load(ctx, s.src)
}
