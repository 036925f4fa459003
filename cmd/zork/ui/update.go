package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			command := strings.TrimSpace(m.input)
			if command == "" {
				return m, nil
			}
			if command == "quit" || command == "exit" {
				m.quitting = true
				return m, tea.Quit
			}
			return m.runCommand(command), nil

		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
			return m, nil

		default:
			if len(msg.String()) == 1 {
				m.input += msg.String()
			}
			return m, nil
		}
	}

	return m, nil
}

func (m Model) runCommand(command string) Model {
	m.input = ""
	m.messages = append(m.messages, "> "+command, "")

	if m.state.Done {
		m.messages = append(m.messages, "The session is over. Press esc to quit.", "")
		return m
	}

	m.step++
	m.state = m.env.Step(command)
	m.messages = append(m.messages, m.state.Observation, "")

	if m.loggers.Debug != nil {
		m.loggers.Debug.Printf("step %d %q: score=%d moves=%d done=%v",
			m.step, command, m.state.Score, m.state.Moves, m.state.Done)
	}
	if m.loggers.Transcript != nil {
		if err := m.loggers.Transcript.LogStep(m.sessionID, m.step, command, m.state); err != nil && m.loggers.Debug != nil {
			m.loggers.Debug.Printf("failed to log step: %v", err)
		}
	}

	return m
}
