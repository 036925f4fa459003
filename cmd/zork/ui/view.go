package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	inputHeight := 3
	statusHeight := 1
	chatHeight := m.height - inputHeight - statusHeight

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("7"))

	userStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	debugStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Width(m.width - 4)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	chatPanel := lipgloss.NewStyle().
		Width(m.width).
		Height(chatHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1)

	contentWidth := m.width - 4

	// Observations carry embedded newlines, so flatten to display lines first.
	var lines []string
	for _, message := range m.messages {
		if message == "" {
			lines = append(lines, "")
			continue
		}
		for _, line := range strings.Split(message, "\n") {
			lines = append(lines, line)
		}
	}

	maxLines := chatHeight - 2
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	var chatContent strings.Builder
	for i := 0; i < maxLines-len(lines); i++ {
		chatContent.WriteString("\n")
	}
	for _, line := range lines {
		switch {
		case line == "":
			chatContent.WriteString("\n")
		case strings.HasPrefix(line, "> "):
			chatContent.WriteString(userStyle.Render(wrapAndIndent(line, contentWidth, " ")) + "\n")
		case strings.HasPrefix(line, "[DEBUG] "):
			chatContent.WriteString(debugStyle.Render(wrapAndIndent(line, contentWidth, " ")) + "\n")
		default:
			chatContent.WriteString(messageStyle.Render(wrapAndIndent(line, contentWidth, " ")) + "\n")
		}
	}

	status := fmt.Sprintf(" Score: %d   Moves: %d   Location: %s", m.state.Score, m.state.Moves, m.state.Location)
	if m.state.Done {
		status += "   [game over]"
	}

	chat := chatPanel.Render(chatContent.String())
	input := inputStyle.Render(m.input + "│")

	return chat + "\n" + statusStyle.Render(status) + "\n" + input
}

func wrapAndIndent(text string, width int, indent string) string {
	if len(text) <= width {
		return indent + text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return indent + text
	}

	var result strings.Builder
	currentLine := indent + words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result.WriteString(currentLine + "\n")
			currentLine = indent + word
		}
	}
	result.WriteString(currentLine)
	return result.String()
}
