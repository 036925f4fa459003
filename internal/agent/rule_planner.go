package agent

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Planner picks the next command given the current observation, the actions
// the environment says are valid, and the agent's memory.
type Planner interface {
	GenerateAction(ctx context.Context, observation string, validActions []string, mem *Memory) (string, error)
}

var plannerDirections = []string{
	"north", "south", "east", "west",
	"northeast", "northwest", "southeast", "southwest",
	"up", "down", "in", "out",
}

// RuleBasedPlanner picks actions from a fixed priority list of handcrafted
// rules: orient first, work the mailbox-and-leaflet opening, then push into
// unexplored exits, with a random valid action as the last resort.
type RuleBasedPlanner struct {
	exploredLocations map[string]bool
	actionHistory     []string
	rng               *rand.Rand
}

func NewRuleBasedPlanner() *RuleBasedPlanner {
	return &RuleBasedPlanner{
		exploredLocations: make(map[string]bool),
		rng:               rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *RuleBasedPlanner) GenerateAction(ctx context.Context, observation string, validActions []string, mem *Memory) (string, error) {
	if action, ok := p.pick(observation, validActions, mem); ok {
		return action, nil
	}
	if len(validActions) == 0 {
		return "", fmt.Errorf("no valid actions to choose from")
	}
	return p.record(validActions[p.rng.Intn(len(validActions))]), nil
}

func (p *RuleBasedPlanner) pick(observation string, validActions []string, mem *Memory) (string, bool) {
	has := func(action string) bool {
		for _, v := range validActions {
			if v == action {
				return true
			}
		}
		return false
	}
	recent := func(action string, window int) bool {
		history := p.actionHistory
		if len(history) > window {
			history = history[len(history)-window:]
		}
		for _, h := range history {
			if h == action {
				return true
			}
		}
		return false
	}

	// Orient before anything else, but don't loop on it.
	if has("look") && !recent("look", 3) {
		return p.record("look"), true
	}
	if has("inventory") && !recent("inventory", 5) {
		return p.record("inventory"), true
	}

	obs := strings.ToLower(observation)

	if has("open mailbox") && strings.Contains(obs, "closed mailbox") {
		return p.record("open mailbox"), true
	}
	if has("take leaflet") && strings.Contains(obs, "leaflet") {
		return p.record("take leaflet"), true
	}

	if has("examine window") && strings.Contains(obs, "window") {
		return p.record("examine window"), true
	}
	if has("enter window") && strings.Contains(obs, "window") {
		return p.record("enter window"), true
	}

	if mem != nil && !recent("read leaflet", 25) {
		for _, item := range mem.Inventory() {
			if strings.Contains(strings.ToLower(item), "leaflet") && has("read leaflet") {
				return p.record("read leaflet"), true
			}
		}
	}

	// Push into a direction we haven't tried lately.
	for _, direction := range plannerDirections {
		action := "go " + direction
		if has(action) && !recent(action, 8) {
			return p.record(action), true
		}
	}

	return "", false
}

func (p *RuleBasedPlanner) record(action string) string {
	p.actionHistory = append(p.actionHistory, action)
	return action
}

// ValidateAction reports whether action is acceptable as-is, or can be
// corrected to one of the valid actions: substring matches and bare
// directions missing their "go" both count.
func (p *RuleBasedPlanner) ValidateAction(action string, validActions []string) (bool, string) {
	for _, v := range validActions {
		if action == v {
			return true, action
		}
	}

	lower := strings.ToLower(action)
	for _, v := range validActions {
		if strings.Contains(strings.ToLower(v), lower) {
			return true, v
		}
	}
	for _, direction := range plannerDirections {
		if lower == direction {
			withGo := "go " + direction
			for _, v := range validActions {
				if v == withGo {
					return true, withGo
				}
			}
		}
	}

	return false, action
}

// UpdateExploration marks the agent's current location as explored.
func (p *RuleBasedPlanner) UpdateExploration(mem *Memory) {
	if mem != nil && mem.CurrentLocation != "" {
		p.exploredLocations[mem.CurrentLocation] = true
	}
}

// ExploredLocations returns the set of locations the agent has stood in.
func (p *RuleBasedPlanner) ExploredLocations() []string {
	locations := make([]string, 0, len(p.exploredLocations))
	for l := range p.exploredLocations {
		locations = append(locations, l)
	}
	return locations
}
