// Stdio MCP server exposing the game environment as reset and step tools.
// Meant to be spawned as a subprocess by an MCP client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"zorkagent/internal/debug"
	"zorkagent/internal/mcp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debugMode := os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true"
	debugLogger := debug.NewLogger(debugMode)

	server := mcp.NewServer(debugLogger)
	if err := server.ServeStdio(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
