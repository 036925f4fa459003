package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"zorkagent/internal/debug"
	"zorkagent/internal/zork"
)

// EnvClient plays the game through a remote MCP environment server. It
// satisfies the agent's Environment interface.
type EnvClient struct {
	client  *mcp.Client
	session *mcp.ClientSession
	debug   *debug.Logger
}

func NewEnvClient(dbg *debug.Logger) *EnvClient {
	return &EnvClient{
		client: mcp.NewClient(&mcp.Implementation{
			Name:    "zork-agent",
			Version: "v1.0.0",
		}, nil),
		debug: dbg,
	}
}

// ConnectCommand spawns the server binary and connects over its stdio.
func (c *EnvClient) ConnectCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	return c.Connect(ctx, &mcp.CommandTransport{Command: cmd})
}

// Connect establishes a session over an arbitrary transport.
func (c *EnvClient) Connect(ctx context.Context, transport mcp.Transport) error {
	session, err := c.client.Connect(ctx, transport, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to environment server: %w", err)
	}
	c.session = session

	if c.debug != nil {
		c.debug.Printf("connected to MCP environment server")
	}
	return nil
}

func (c *EnvClient) Close() error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

func (c *EnvClient) Reset(ctx context.Context) (zork.State, error) {
	return c.call(ctx, "reset", nil)
}

func (c *EnvClient) Step(ctx context.Context, command string) (zork.State, error) {
	return c.call(ctx, "step", map[string]interface{}{"command": command})
}

func (c *EnvClient) call(ctx context.Context, tool string, arguments map[string]interface{}) (zork.State, error) {
	if c.session == nil {
		return zork.State{}, fmt.Errorf("%s: not connected", tool)
	}

	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      tool,
		Arguments: arguments,
	})
	if err != nil {
		return zork.State{}, fmt.Errorf("%s call failed: %w", tool, err)
	}
	if result.IsError {
		return zork.State{}, fmt.Errorf("%s returned an error: %s", tool, textContent(result))
	}

	st, err := decodeState(result)
	if err != nil {
		return zork.State{}, fmt.Errorf("%s: %w", tool, err)
	}

	if c.debug != nil {
		c.debug.Printf("MCP %s: location=%s moves=%d score=%d", tool, st.Location, st.Moves, st.Score)
	}
	return st, nil
}

// decodeState rebuilds the state envelope from the tool result's structured
// content, falling back to the text content for servers that only emit JSON
// text.
func decodeState(result *mcp.CallToolResult) (zork.State, error) {
	var st zork.State

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		if err != nil {
			return st, fmt.Errorf("failed to marshal structured content: %w", err)
		}
		if err := json.Unmarshal(data, &st); err != nil {
			return st, fmt.Errorf("failed to decode structured content: %w", err)
		}
		return st, nil
	}

	text := textContent(result)
	if text == "" {
		return st, fmt.Errorf("tool result carried no content")
	}
	if err := json.Unmarshal([]byte(text), &st); err != nil {
		return st, fmt.Errorf("failed to decode state from text content: %w", err)
	}
	return st, nil
}

func textContent(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
