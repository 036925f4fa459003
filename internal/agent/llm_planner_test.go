package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"zorkagent/internal/llm"
)

// stubCompleter returns a canned response, or an error when failing is set.
type stubCompleter struct {
	response string
	failing  bool
	requests []llm.JSONCompletionRequest
}

func (s *stubCompleter) CompleteJSON(ctx context.Context, req llm.JSONCompletionRequest) (string, error) {
	s.requests = append(s.requests, req)
	if s.failing {
		return "", fmt.Errorf("completion unavailable")
	}
	return s.response, nil
}

func TestLLMPlannerUsesModelAction(t *testing.T) {
	completer := &stubCompleter{response: `{"action": "open mailbox"}`}
	p := NewLLMPlanner(completer, nil)

	action, err := p.GenerateAction(context.Background(),
		"There is a closed mailbox here.",
		[]string{"open mailbox", "go north", "look"},
		NewMemory(),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if action != "open mailbox" {
		t.Errorf("action = %q, want open mailbox", action)
	}
	if len(completer.requests) != 1 {
		t.Fatalf("completer called %d times, want 1", len(completer.requests))
	}
}

func TestLLMPlannerCorrectsBareDirection(t *testing.T) {
	completer := &stubCompleter{response: `{"action": "north"}`}
	p := NewLLMPlanner(completer, nil)

	action, err := p.GenerateAction(context.Background(),
		"This is a forest.",
		[]string{"go north", "go south"},
		NewMemory(),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if action != "go north" {
		t.Errorf("action = %q, want go north", action)
	}
}

func TestLLMPlannerFallsBackOnError(t *testing.T) {
	completer := &stubCompleter{failing: true}
	p := NewLLMPlanner(completer, nil)

	action, err := p.GenerateAction(context.Background(),
		"You are somewhere.",
		[]string{"look", "go north"},
		NewMemory(),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// The rule-based fallback orients first.
	if action != "look" {
		t.Errorf("fallback action = %q, want look", action)
	}
}

func TestLLMPlannerFallsBackOnInvalidAction(t *testing.T) {
	completer := &stubCompleter{response: `{"action": "cast fireball"}`}
	p := NewLLMPlanner(completer, nil)

	action, err := p.GenerateAction(context.Background(),
		"You are somewhere.",
		[]string{"look", "go north"},
		NewMemory(),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if action != "look" {
		t.Errorf("fallback action = %q, want look", action)
	}
}

func TestLLMPlannerFallsBackOnMalformedResponse(t *testing.T) {
	completer := &stubCompleter{response: `open mailbox`}
	p := NewLLMPlanner(completer, nil)

	action, err := p.GenerateAction(context.Background(),
		"You are somewhere.",
		[]string{"look", "go north"},
		NewMemory(),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if action != "look" {
		t.Errorf("fallback action = %q, want look", action)
	}
}

func TestLLMPlannerPromptCarriesState(t *testing.T) {
	completer := &stubCompleter{response: `{"action": "look"}`}
	p := NewLLMPlanner(completer, nil)

	mem := NewMemory()
	mem.CurrentLocation = "kitchen"
	mem.UpdateInventory("You are carrying:\n  A brass lamp")

	if _, err := p.GenerateAction(context.Background(),
		"You are in the kitchen.",
		[]string{"look", "go west"},
		mem,
	); err != nil {
		t.Fatalf("generate: %v", err)
	}

	prompt := completer.requests[0].UserPrompt
	for _, want := range []string{"You are in the kitchen.", "look, go west", "A brass lamp", "kitchen"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
