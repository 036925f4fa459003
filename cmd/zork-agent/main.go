// Agent runner: plays the environment autonomously with either the
// rule-based or the LLM planner, against the in-process engine or a spawned
// MCP environment server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zorkagent/internal/agent"
	"zorkagent/internal/debug"
	"zorkagent/internal/llm"
	"zorkagent/internal/logging"
	"zorkagent/internal/mcp"
	"zorkagent/internal/observability"
)

func main() {
	plannerKind := flag.String("planner", "rule", "planner to use: rule or llm")
	envKind := flag.String("env", "local", "environment to play: local or mcp")
	serverPath := flag.String("server", "zork-mcp", "environment server binary for -env=mcp")
	maxSteps := flag.Int("steps", 50, "maximum steps per episode (0 for unlimited)")
	delay := flag.Duration("delay", time.Second, "pause between steps")
	dbPath := flag.String("db", "./transcripts.db", "path to the transcript database")
	flag.Parse()

	if err := run(*plannerKind, *envKind, *serverPath, *maxSteps, *delay, *dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(plannerKind, envKind, serverPath string, maxSteps int, delay time.Duration, dbPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debugMode := os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true"
	debugLogger := debug.NewLogger(debugMode)

	tracingConfig := observability.LoadConfigFromEnv()
	tracerProvider, err := observability.InitTracing(ctx, tracingConfig)
	if err != nil {
		debugLogger.Printf("Failed to initialize tracing: %v", err)
	} else {
		defer tracerProvider.Shutdown(context.Background())
	}

	env, closeEnv, err := buildEnvironment(ctx, envKind, serverPath, debugLogger)
	if err != nil {
		return err
	}
	defer closeEnv()

	planner, err := buildPlanner(plannerKind, debugLogger)
	if err != nil {
		return err
	}

	transcript, err := logging.NewTranscriptLogger(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize transcript logger: %w", err)
	}
	defer transcript.Close()

	loop := agent.NewLoop(env, planner, transcript, debugLogger, agent.LoopConfig{
		MaxSteps: maxSteps,
		Delay:    delay,
		Output:   os.Stdout,
	})

	fmt.Printf("Playing with the %s planner against the %s environment (session %s).\n",
		plannerKind, envKind, loop.SessionID())
	fmt.Println("Press Ctrl+C to stop the agent.")

	if _, err := loop.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nAgent stopped.")
			return nil
		}
		return err
	}
	return nil
}

func buildEnvironment(ctx context.Context, kind, serverPath string, dbg *debug.Logger) (agent.Environment, func(), error) {
	switch kind {
	case "local":
		return agent.NewLocal(), func() {}, nil
	case "mcp":
		client := mcp.NewEnvClient(dbg)
		if err := client.ConnectCommand(ctx, serverPath); err != nil {
			return nil, nil, fmt.Errorf("failed to start environment server %q: %w", serverPath, err)
		}
		return client, func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown environment %q (want local or mcp)", kind)
	}
}

func buildPlanner(kind string, dbg *debug.Logger) (agent.Planner, error) {
	switch kind {
	case "rule":
		return agent.NewRuleBasedPlanner(), nil
	case "llm":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("please set OPENAI_API_KEY to use the llm planner")
		}
		return agent.NewLLMPlanner(llm.NewService(apiKey, dbg), dbg), nil
	default:
		return nil, fmt.Errorf("unknown planner %q (want rule or llm)", kind)
	}
}
