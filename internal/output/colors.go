package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// STAGE_COLORS defines the color palette cycled through for stage headers
var STAGE_COLORS = []string{
	"#4CCBF1", // Light blue
	"#4DCA7D", // Green
	"#6EAD26", // Dark green
	"#F5C800", // Yellow
	"#F89048", // Orange
	"#F46251", // Red
	"#EB82BC", // Pink
	"#9F83E4", // Purple
	"#5084F3", // Blue
}

// ColorsEnabled reports whether stdout is a terminal and NO_COLOR is unset
func ColorsEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// StageStyle returns the lipgloss style for a stage header, cycling the
// palette
func StageStyle(stage int) lipgloss.Style {
	color := STAGE_COLORS[(stage-1+len(STAGE_COLORS))%len(STAGE_COLORS)]
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// ColorDim renders de-emphasized text
func ColorDim(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render(text)
}

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(text)
}
