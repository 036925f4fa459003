package agent

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"zorkagent/internal/zork"
)

// recordingSink collects logged steps in memory.
type recordingSink struct {
	steps []string
}

func (r *recordingSink) LogStep(sessionID string, step int, action string, st zork.State) error {
	r.steps = append(r.steps, action)
	return nil
}

func TestLoopRunsToStepLimit(t *testing.T) {
	sink := &recordingSink{}
	var out bytes.Buffer

	loop := NewLoop(NewLocal(), NewRuleBasedPlanner(), sink, nil, LoopConfig{
		MaxSteps: 5,
		Output:   &out,
	})

	summary, err := loop.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.Steps != 5 {
		t.Errorf("steps = %d, want 5", summary.Steps)
	}
	if summary.SessionID == "" {
		t.Error("summary carries no session id")
	}
	if len(sink.steps) != 5 {
		t.Errorf("transcript recorded %d steps, want 5", len(sink.steps))
	}
	if len(summary.LocationsVisited) == 0 {
		t.Error("no locations marked explored")
	}

	text := out.String()
	for _, want := range []string{"INITIAL STATE", "STEP 1", "FINAL STATS"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q section", want)
		}
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop := NewLoop(NewLocal(), NewRuleBasedPlanner(), nil, nil, LoopConfig{MaxSteps: 100})
	if _, err := loop.Run(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestLoopFirstActionsFollowOpeningRules(t *testing.T) {
	sink := &recordingSink{}
	loop := NewLoop(NewLocal(), NewRuleBasedPlanner(), sink, nil, LoopConfig{MaxSteps: 3})

	if _, err := loop.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// Orient, check pockets, then work the mailbox.
	want := []string{"look", "inventory", "open mailbox"}
	for i, action := range want {
		if i >= len(sink.steps) || sink.steps[i] != action {
			t.Fatalf("steps = %v, want prefix %v", sink.steps, want)
		}
	}
}
