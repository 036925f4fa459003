package agent

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"zorkagent/internal/debug"
	"zorkagent/internal/llm"
	"zorkagent/internal/observability"
	"zorkagent/internal/zork"
)

// TranscriptSink receives every step of an episode for persistence.
// *logging.TranscriptLogger satisfies it.
type TranscriptSink interface {
	LogStep(sessionID string, step int, action string, st zork.State) error
}

// explorationUpdater is implemented by planners that track visited locations.
type explorationUpdater interface {
	UpdateExploration(mem *Memory)
	ExploredLocations() []string
}

// LoopConfig carries the episode limits and pacing for a run.
type LoopConfig struct {
	MaxSteps int           // 0 means run until the environment is done
	Delay    time.Duration // pause between steps, for following along
	Output   io.Writer     // progress output; nil silences it
}

// RunSummary is what an episode amounted to.
type RunSummary struct {
	SessionID        string
	Steps            int
	Score            int
	Moves            int
	LocationsVisited []string
	Inventory        []string
	Done             bool
}

// Loop drives one agent episode: reset the environment, then alternate
// planner and environment until the episode ends or the step limit is hit.
type Loop struct {
	env        Environment
	planner    Planner
	memory     *Memory
	transcript TranscriptSink
	debug      *debug.Logger
	tracer     trace.Tracer
	sessionID  string
	config     LoopConfig
}

func NewLoop(env Environment, planner Planner, transcript TranscriptSink, dbg *debug.Logger, config LoopConfig) *Loop {
	return &Loop{
		env:        env,
		planner:    planner,
		memory:     NewMemory(),
		transcript: transcript,
		debug:      dbg,
		tracer:     otel.Tracer("agent-loop"),
		sessionID:  uuid.New().String(),
		config:     config,
	}
}

func (l *Loop) SessionID() string { return l.sessionID }

// Run plays one episode and returns its summary. The context cancels the
// episode between steps; the partial summary is returned with the error.
func (l *Loop) Run(ctx context.Context) (RunSummary, error) {
	ctx = llm.WithSessionID(ctx, l.sessionID)

	ctx, span := l.tracer.Start(ctx, "agent.episode",
		trace.WithAttributes(
			observability.CreateLangfuseAttributes("agent.episode", l.sessionID, []string{"zork", "agent"})...,
		),
	)
	defer span.End()

	st, err := l.env.Reset(ctx)
	if err != nil {
		span.RecordError(err)
		return RunSummary{SessionID: l.sessionID}, fmt.Errorf("reset environment: %w", err)
	}
	l.memory.AddObservation(st.Observation, st)

	l.section("INITIAL STATE")
	l.printf("Location: %s\n", l.memory.CurrentLocation)
	l.printf("Observation: %s\n", st.Observation)

	step := 0
	for !st.Done {
		if l.config.MaxSteps > 0 && step >= l.config.MaxSteps {
			break
		}
		if err := l.pause(ctx); err != nil {
			span.RecordError(err)
			return l.summary(step, st), err
		}

		step++
		st, err = l.runStep(ctx, step, st)
		if err != nil {
			span.RecordError(err)
			return l.summary(step, st), err
		}
	}

	span.SetAttributes(
		attribute.Int("agent.steps", step),
		attribute.Int("agent.final_score", st.Score),
		attribute.Bool("agent.done", st.Done),
	)

	summary := l.summary(step, st)
	l.section("FINAL STATS")
	l.printf("Steps: %d\n", summary.Steps)
	l.printf("Score: %d\n", summary.Score)
	l.printf("Locations visited: %d\n", len(summary.LocationsVisited))
	l.printf("Locations: %s\n", strings.Join(summary.LocationsVisited, ", "))
	l.printf("Inventory: %s\n", strings.Join(summary.Inventory, ", "))

	return summary, nil
}

func (l *Loop) runStep(ctx context.Context, step int, st zork.State) (zork.State, error) {
	ctx, span := l.tracer.Start(ctx, "agent.step",
		trace.WithAttributes(attribute.Int("agent.step.number", step)),
	)
	defer span.End()

	l.section(fmt.Sprintf("STEP %d", step))

	action, err := l.planner.GenerateAction(ctx, st.Observation, st.ValidActions, l.memory)
	if err != nil {
		span.RecordError(err)
		return st, fmt.Errorf("plan step %d: %w", step, err)
	}
	l.printf("Agent action: %s\n", action)
	span.SetAttributes(attribute.String("agent.step.action", action))

	result, err := l.env.Step(ctx, action)
	if err != nil {
		span.RecordError(err)
		return st, fmt.Errorf("step %d (%s): %w", step, action, err)
	}

	l.memory.AddAction(action, result)
	l.memory.AddObservation(result.Observation, result)
	if action == "inventory" || action == "i" {
		l.memory.UpdateInventory(result.Inventory)
	}
	if updater, ok := l.planner.(explorationUpdater); ok {
		updater.UpdateExploration(l.memory)
	}

	if l.transcript != nil {
		if err := l.transcript.LogStep(l.sessionID, step, action, result); err != nil && l.debug != nil {
			l.debug.Printf("transcript logging failed at step %d: %v", step, err)
		}
	}

	span.SetAttributes(
		attribute.Int("agent.step.score", result.Score),
		attribute.Int("agent.step.moves", result.Moves),
		attribute.String("agent.step.location", result.Location),
	)

	l.printf("Observation: %s\n", result.Observation)
	l.printf("Location: %s\n", l.memory.CurrentLocation)
	l.printf("Score: %d\n", l.memory.Score)
	l.printf("Moves: %d\n", l.memory.Moves)
	l.printf("Inventory: %s\n", strings.Join(l.memory.Inventory(), ", "))

	return result, nil
}

func (l *Loop) summary(steps int, st zork.State) RunSummary {
	summary := RunSummary{
		SessionID: l.sessionID,
		Steps:     steps,
		Score:     st.Score,
		Moves:     st.Moves,
		Inventory: l.memory.Inventory(),
		Done:      st.Done,
	}
	if updater, ok := l.planner.(explorationUpdater); ok {
		summary.LocationsVisited = updater.ExploredLocations()
	} else {
		summary.LocationsVisited = l.memory.LocationHistory()
	}
	return summary
}

func (l *Loop) pause(ctx context.Context) error {
	if l.config.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(l.config.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) section(title string) {
	if l.config.Output == nil {
		return
	}
	divider := strings.Repeat("=", 60)
	fmt.Fprintf(l.config.Output, "\n%s\n%s\n%s\n", divider, title, divider)
}

func (l *Loop) printf(format string, args ...interface{}) {
	if l.config.Output == nil {
		return
	}
	fmt.Fprintf(l.config.Output, format, args...)
}
