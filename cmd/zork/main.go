// Terminal front end for the Zork-style environment. Plays a session
// interactively and records every step to a local SQLite transcript;
// "review" prints the most recent recorded steps.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"zorkagent/internal/logging"
)

func main() {
	dbPath := flag.String("db", "./transcripts.db", "path to the transcript database")
	flag.Parse()

	if flag.Arg(0) == "review" {
		runReviewMode(*dbPath)
		return
	}

	model, cleanup, err := createApp(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReviewMode(dbPath string) {
	logger, err := logging.NewTranscriptLogger(dbPath)
	if err != nil {
		fmt.Printf("Failed to open transcript database: %v\n", err)
		return
	}
	defer logger.Close()

	steps, err := logger.RecentSteps(20)
	if err != nil {
		fmt.Printf("Failed to get steps: %v\n", err)
		return
	}
	if len(steps) == 0 {
		fmt.Println("No steps recorded. Play a session first!")
		return
	}

	fmt.Printf("Recent steps (%d):\n\n", len(steps))
	for _, step := range steps {
		fmt.Printf("[%s] step %d | %s | score %d, moves %d\n",
			step.SessionID[:8], step.Step, step.Timestamp.Format("15:04:05"), step.Score, step.Moves)
		fmt.Printf("> %s\n", step.Action)
		fmt.Printf("%s\n", step.Observation)
		fmt.Println(strings.Repeat("-", 50))
	}
}
