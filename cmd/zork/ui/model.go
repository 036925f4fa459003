package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"zorkagent/internal/debug"
	"zorkagent/internal/logging"
	"zorkagent/internal/zork"
)

// GameLoggers bundles the loggers the UI writes to.
type GameLoggers struct {
	Debug      *debug.Logger
	Transcript *logging.TranscriptLogger
}

type Model struct {
	messages  []string
	input     string
	width     int
	height    int
	env       *zork.Environment
	state     zork.State
	sessionID string
	step      int
	loggers   GameLoggers
	debug     bool
	quitting  bool
}

func NewModel(env *zork.Environment, sessionID string, loggers GameLoggers, debugMode bool) Model {
	st := env.Reset()

	messages := []string{}
	if debugMode {
		messages = append(messages, "[DEBUG] session "+sessionID)
		messages = append(messages, fmt.Sprintf("[DEBUG] starting at %s with %d valid actions", st.Location, len(st.ValidActions)))
		messages = append(messages, "")
	}
	messages = append(messages, st.Observation, "")

	return Model{
		messages:  messages,
		env:       env,
		state:     st,
		sessionID: sessionID,
		loggers:   loggers,
		debug:     debugMode,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Cleanup() {
	if m.loggers.Transcript != nil {
		m.loggers.Transcript.Close()
	}
}
