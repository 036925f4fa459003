// Package mcp exposes the game engine over the Model Context Protocol and
// provides the matching client, so the agent can play against an
// out-of-process environment exactly as it plays against the local one.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"zorkagent/internal/debug"
	"zorkagent/internal/zork"
)

// StepInput is the argument payload for the step tool.
type StepInput struct {
	Command string `json:"command" jsonschema:"the game command to execute"`
}

// ResetInput is the (empty) argument payload for the reset tool.
type ResetInput struct{}

// Server wraps one engine instance behind reset and step tools. Each server
// owns a single game session; reset starts it over.
type Server struct {
	env    *zork.Environment
	server *mcp.Server
	debug  *debug.Logger
}

func NewServer(dbg *debug.Logger) *Server {
	s := &Server{
		env:   zork.New(),
		debug: dbg,
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "zork-env",
		Version: "v1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset",
		Description: "Start a new game session and return the initial state.",
	}, s.handleReset)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "step",
		Description: "Execute one game command and return the resulting state.",
	}, s.handleStep)

	s.server = server
	return s
}

func (s *Server) handleReset(ctx context.Context, _ *mcp.CallToolRequest, _ ResetInput) (*mcp.CallToolResult, zork.State, error) {
	st := s.env.Reset()
	if s.debug != nil {
		s.debug.Printf("MCP reset: location=%s", st.Location)
	}
	return nil, st, nil
}

func (s *Server) handleStep(ctx context.Context, _ *mcp.CallToolRequest, input StepInput) (*mcp.CallToolResult, zork.State, error) {
	st := s.env.Step(input.Command)
	if s.debug != nil {
		s.debug.Printf("MCP step %q: moves=%d score=%d done=%v", input.Command, st.Moves, st.Score, st.Done)
	}
	return nil, st, nil
}

// Run serves the tools over the given transport until the context is
// cancelled or the peer disconnects.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// ServeStdio serves over stdin/stdout, for use as a spawned subprocess.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
