// ABOUTME: MCP server setup for the training summary pipeline.
// ABOUTME: Wraps MCP server with storage and the recommendation engine.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mediulus/train-together/internal/recommend"
	"github.com/mediulus/train-together/internal/storage"
	"github.com/mediulus/train-together/internal/summary"
)

// Server wraps the MCP server with storage and pipeline access. The engine
// may be nil when no generator is configured; the recommend tool then
// reports that it is unavailable.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	builder   *summary.Builder
	engine    *recommend.Engine
}

// NewServer creates a new MCP server over the given storage and pipeline.
func NewServer(repo storage.Repository, builder *summary.Builder, engine *recommend.Engine) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "trainweek",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		builder:   builder,
		engine:    engine,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
