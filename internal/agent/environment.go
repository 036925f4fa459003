// Package agent contains the planning loop that plays the game on its own:
// a memory of what it has seen and done, planners that pick the next command,
// and the loop that wires them to an environment.
package agent

import (
	"context"

	"zorkagent/internal/zork"
)

// Environment is the surface the loop plays against. The local engine and the
// MCP-backed client both satisfy it; remote implementations surface transport
// failures through the error.
type Environment interface {
	Reset(ctx context.Context) (zork.State, error)
	Step(ctx context.Context, command string) (zork.State, error)
}

// Local adapts the in-process engine to the Environment interface.
type Local struct {
	env *zork.Environment
}

func NewLocal() *Local {
	return &Local{env: zork.New()}
}

func (l *Local) Reset(ctx context.Context) (zork.State, error) {
	return l.env.Reset(), nil
}

func (l *Local) Step(ctx context.Context, command string) (zork.State, error) {
	return l.env.Step(command), nil
}
