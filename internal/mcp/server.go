// ABOUTME: MCP server exposing the meal log to AI agents.
// ABOUTME: Tools mirror the CLI's create, query, update, and delete flows.

package mcp

import (
	"context"
	"database/sql"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server *mcp.Server
	db     *sql.DB
}

func NewServer(db *sql.DB) *Server {
	s := &Server{db: db}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "mealog",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools: true,
		},
	)

	s.registerTools()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
