package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("#7CB342") // Leaf green
	colorDanger = lipgloss.Color("#FF5252") // Red for refused actions
	colorMuted  = lipgloss.Color("#8C8C8C")

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	styleFail = lipgloss.NewStyle().
			Foreground(colorDanger)

	styleHint = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// renderMessage colours refused actions. Plain output is left alone so it
// stays readable when piped.
func renderMessage(msg string) string {
	if strings.HasPrefix(msg, "Can't") {
		return styleFail.Render(msg)
	}
	return msg
}
