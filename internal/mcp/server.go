package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/antojo/antojo/internal/orchestrator"
	"github.com/antojo/antojo/pkg/types"
)

const (
	// ServerName is the MCP server name
	ServerName = "antojo-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp    *server.MCPServer
	orch   *orchestrator.Orchestrator
	dishes []types.Dish
	log    zerolog.Logger
}

// NewServer creates a new MCP server instance over an already wired
// orchestrator and catalog.
func NewServer(orch *orchestrator.Orchestrator, dishes []types.Dish, log zerolog.Logger) *Server {
	s := &Server{
		mcp:    server.NewMCPServer(ServerName, ServerVersion),
		orch:   orch,
		dishes: dishes,
		log:    log,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(parseQueryTool(), s.handleParseQuery)
	s.mcp.AddTool(searchDishesTool(), s.handleSearchDishes)
	s.mcp.AddTool(catalogStatusTool(), s.handleCatalogStatus)
}
