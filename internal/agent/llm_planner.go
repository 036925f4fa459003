package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"zorkagent/internal/debug"
	"zorkagent/internal/llm"
)

const plannerSystemPrompt = `You are an expert text adventure game player. Your task is to generate the next action for an agent playing Zork. You will be given:

1. The current observation from the game
2. A list of valid actions in the current state
3. The agent's inventory
4. Recent actions taken by the agent
5. The agent's current location

Your goal is to generate a single action that will help the agent make progress in the game. The action must be one of the valid actions provided. Focus on:

- Exploration: systematically exploring the game world
- Object interaction: taking, examining, and using objects appropriately
- Puzzle solving: identifying and solving puzzles
- Goal tracking: working toward game objectives

Respond with a JSON object of the form {"action": "<the next action>"} and nothing else.`

// maxPromptActions caps how many valid actions the prompt enumerates.
const maxPromptActions = 20

// Completer is the one LLM call the planner needs. *llm.Service satisfies it.
type Completer interface {
	CompleteJSON(ctx context.Context, req llm.JSONCompletionRequest) (string, error)
}

// LLMPlanner asks a language model for the next action and falls back to the
// rule-based planner whenever the model is unavailable, errors, or proposes
// something the environment won't accept and can't be corrected.
type LLMPlanner struct {
	completer Completer
	fallback  *RuleBasedPlanner
	debug     *debug.Logger

	actionHistory []string
}

func NewLLMPlanner(completer Completer, debug *debug.Logger) *LLMPlanner {
	return &LLMPlanner{
		completer: completer,
		fallback:  NewRuleBasedPlanner(),
		debug:     debug,
	}
}

func (p *LLMPlanner) GenerateAction(ctx context.Context, observation string, validActions []string, mem *Memory) (string, error) {
	if len(validActions) == 0 || p.completer == nil {
		return p.fallback.GenerateAction(ctx, observation, validActions, mem)
	}

	proposed, err := p.completeAction(ctx, observation, validActions, mem)
	if err != nil {
		if p.debug != nil {
			p.debug.Printf("LLM planner falling back to rules: %v", err)
		}
		return p.fallback.GenerateAction(ctx, observation, validActions, mem)
	}

	valid, corrected := p.fallback.ValidateAction(proposed, validActions)
	if !valid {
		if p.debug != nil {
			p.debug.Printf("LLM planner proposed invalid action %q, falling back to rules", proposed)
		}
		return p.fallback.GenerateAction(ctx, observation, validActions, mem)
	}
	if corrected != proposed && p.debug != nil {
		p.debug.Printf("LLM planner corrected %q to %q", proposed, corrected)
	}

	p.actionHistory = append(p.actionHistory, corrected)
	return corrected, nil
}

func (p *LLMPlanner) completeAction(ctx context.Context, observation string, validActions []string, mem *Memory) (string, error) {
	ctx = llm.WithOperationType(ctx, "plan_action")

	content, err := p.completer.CompleteJSON(ctx, llm.JSONCompletionRequest{
		SystemPrompt: plannerSystemPrompt,
		UserPrompt:   p.buildPrompt(observation, validActions, mem),
		MaxTokens:    200,
	})
	if err != nil {
		return "", fmt.Errorf("plan action completion: %w", err)
	}

	var decoded struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return "", fmt.Errorf("decode planner response %q: %w", content, err)
	}
	action := strings.TrimSpace(decoded.Action)
	if action == "" {
		return "", fmt.Errorf("planner response %q carried no action", content)
	}
	return action, nil
}

// UpdateExploration delegates to the fallback planner so exploration state
// stays coherent across LLM and rule-based decisions.
func (p *LLMPlanner) UpdateExploration(mem *Memory) {
	p.fallback.UpdateExploration(mem)
}

func (p *LLMPlanner) ExploredLocations() []string {
	return p.fallback.ExploredLocations()
}

func (p *LLMPlanner) buildPrompt(observation string, validActions []string, mem *Memory) string {
	actions := validActions
	if len(actions) > maxPromptActions {
		actions = actions[:maxPromptActions]
	}

	location := "unknown"
	var inventory []string
	if mem != nil {
		if mem.CurrentLocation != "" {
			location = mem.CurrentLocation
		}
		inventory = mem.Inventory()
	}

	recent := p.actionHistory
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current Observation:\n%s\n\n", observation)
	fmt.Fprintf(&b, "Valid Actions:\n%s\n\n", strings.Join(actions, ", "))
	fmt.Fprintf(&b, "Inventory:\n%s\n\n", strings.Join(inventory, ", "))
	fmt.Fprintf(&b, "Current Location:\n%s\n\n", location)
	fmt.Fprintf(&b, "Recent Actions:\n%s\n\n", strings.Join(recent, ", "))
	b.WriteString("Generate the next action.")
	return b.String()
}
