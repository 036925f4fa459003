package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// startEnv wires a server and client over in-memory transports and returns
// the connected client.
func startEnv(t *testing.T) *EnvClient {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	server := NewServer(nil)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Run(ctx, serverTransport)
	}()

	client := NewEnvClient(nil)
	connectCtx, connectCancel := context.WithTimeout(ctx, 2*time.Second)
	defer connectCancel()
	if err := client.Connect(connectCtx, clientTransport); err != nil {
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestResetOverMCP(t *testing.T) {
	client := startEnv(t)
	ctx := context.Background()

	st, err := client.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if st.Location != "west_of_house" {
		t.Errorf("location = %q, want west_of_house", st.Location)
	}
	if !strings.Contains(st.Observation, "west of a white house") {
		t.Errorf("observation = %q", st.Observation)
	}
	if len(st.ValidActions) == 0 {
		t.Error("valid actions did not survive the round trip")
	}
}

func TestStepOverMCP(t *testing.T) {
	client := startEnv(t)
	ctx := context.Background()

	if _, err := client.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	st, err := client.Step(ctx, "open mailbox")
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if st.Observation != "Opening the mailbox reveals a small leaflet." {
		t.Errorf("observation = %q", st.Observation)
	}
	if st.Moves != 1 {
		t.Errorf("moves = %d, want 1", st.Moves)
	}

	st, err = client.Step(ctx, "take leaflet")
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if st.Observation != "Taken." {
		t.Errorf("observation = %q", st.Observation)
	}
	if !strings.Contains(st.Inventory, "leaflet") {
		t.Errorf("inventory = %q", st.Inventory)
	}
}

func TestServerHoldsOneSession(t *testing.T) {
	client := startEnv(t)
	ctx := context.Background()

	if _, err := client.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := client.Step(ctx, "open mailbox"); err != nil {
		t.Fatalf("step: %v", err)
	}

	st, err := client.Reset(ctx)
	if err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if st.Moves != 0 || st.Score != 0 {
		t.Errorf("reset did not start over: moves=%d score=%d", st.Moves, st.Score)
	}
	if !strings.Contains(st.Observation, "closed mailbox") {
		t.Errorf("mailbox state leaked across reset: %q", st.Observation)
	}
}

func TestStepWithoutConnectFails(t *testing.T) {
	client := NewEnvClient(nil)
	if _, err := client.Step(context.Background(), "look"); err == nil {
		t.Fatal("expected error from unconnected client")
	}
}
