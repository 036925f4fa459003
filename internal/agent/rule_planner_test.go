package agent

import (
	"context"
	"testing"
)

func TestRulePlannerOrientsFirst(t *testing.T) {
	p := NewRuleBasedPlanner()
	ctx := context.Background()
	valid := []string{"look", "inventory", "go north", "open mailbox"}

	action, err := p.GenerateAction(ctx, "You are somewhere.", valid, NewMemory())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if action != "look" {
		t.Errorf("first action = %q, want look", action)
	}

	action, err = p.GenerateAction(ctx, "You are somewhere.", valid, NewMemory())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if action != "inventory" {
		t.Errorf("second action = %q, want inventory", action)
	}
}

func TestRulePlannerOpensMailbox(t *testing.T) {
	p := NewRuleBasedPlanner()
	p.actionHistory = []string{"look", "inventory"} // already oriented

	action, err := p.GenerateAction(context.Background(),
		"There is a closed mailbox here.",
		[]string{"look", "open mailbox", "go north"},
		NewMemory(),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if action != "open mailbox" {
		t.Errorf("action = %q, want open mailbox", action)
	}
}

func TestRulePlannerTakesLeaflet(t *testing.T) {
	p := NewRuleBasedPlanner()
	p.actionHistory = []string{"look", "inventory"}

	action, err := p.GenerateAction(context.Background(),
		"Opening the mailbox reveals a small leaflet.",
		[]string{"take leaflet", "close mailbox", "go north"},
		NewMemory(),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if action != "take leaflet" {
		t.Errorf("action = %q, want take leaflet", action)
	}
}

func TestRulePlannerReadsHeldLeaflet(t *testing.T) {
	p := NewRuleBasedPlanner()
	p.actionHistory = []string{"look", "inventory"}

	mem := NewMemory()
	mem.UpdateInventory("You are carrying:\n  A small leaflet")

	action, err := p.GenerateAction(context.Background(),
		"You are in an open field.",
		[]string{"read leaflet", "drop leaflet"},
		mem,
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if action != "read leaflet" {
		t.Errorf("action = %q, want read leaflet", action)
	}
}

func TestRulePlannerExploresUnvisitedDirections(t *testing.T) {
	p := NewRuleBasedPlanner()
	p.actionHistory = []string{"look", "inventory", "go north"}

	action, err := p.GenerateAction(context.Background(),
		"This is a forest.",
		[]string{"go north", "go south"},
		NewMemory(),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if action != "go south" {
		t.Errorf("action = %q, want go south (north tried recently)", action)
	}
}

func TestRulePlannerErrorsWithNoValidActions(t *testing.T) {
	p := NewRuleBasedPlanner()
	if _, err := p.GenerateAction(context.Background(), "void", nil, NewMemory()); err == nil {
		t.Fatal("expected error with no valid actions")
	}
}

func TestValidateAction(t *testing.T) {
	p := NewRuleBasedPlanner()
	valid := []string{"go north", "open mailbox", "take leaflet", "look"}

	tests := []struct {
		action    string
		wantOK    bool
		corrected string
	}{
		{"go north", true, "go north"},
		{"north", true, "go north"},
		{"mailbox", true, "open mailbox"},
		{"dance", false, "dance"},
	}

	for _, tt := range tests {
		ok, corrected := p.ValidateAction(tt.action, valid)
		if ok != tt.wantOK || corrected != tt.corrected {
			t.Errorf("ValidateAction(%q) = (%v, %q), want (%v, %q)",
				tt.action, ok, corrected, tt.wantOK, tt.corrected)
		}
	}
}

func TestUpdateExploration(t *testing.T) {
	p := NewRuleBasedPlanner()
	mem := NewMemory()
	mem.CurrentLocation = "kitchen"

	p.UpdateExploration(mem)
	p.UpdateExploration(mem)

	locations := p.ExploredLocations()
	if len(locations) != 1 || locations[0] != "kitchen" {
		t.Errorf("explored locations = %v, want [kitchen]", locations)
	}
}
