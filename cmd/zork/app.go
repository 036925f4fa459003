package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"zorkagent/cmd/zork/ui"
	"zorkagent/internal/debug"
	"zorkagent/internal/logging"
	"zorkagent/internal/zork"
)

func createApp(dbPath string) (ui.Model, func(), error) {
	debugMode := os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true"
	debugLogger := debug.NewLogger(debugMode)

	transcript, err := logging.NewTranscriptLogger(dbPath)
	if err != nil {
		return ui.Model{}, nil, fmt.Errorf("failed to initialize transcript logger: %w", err)
	}

	sessionID := uuid.New().String()
	debugLogger.Printf("starting session %s", sessionID)

	loggers := ui.GameLoggers{
		Debug:      debugLogger,
		Transcript: transcript,
	}
	model := ui.NewModel(zork.New(), sessionID, loggers, debugMode)

	cleanup := func() {
		model.Cleanup()
	}

	return model, cleanup, nil
}
