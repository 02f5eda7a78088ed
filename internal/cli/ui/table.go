package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

// NewTable returns a table writing to Stdout with the entry name column in
// bold. Column widths are measured with lipgloss so styled cells line up.
func NewTable(headers ...interface{}) table.Table {
	bold := func(format string, vals ...interface{}) string {
		return BoldStyle.Render(fmt.Sprintf(format, vals...))
	}
	return table.New(headers...).
		WithWriter(Stdout).
		WithPadding(2).
		WithWidthFunc(lipgloss.Width).
		WithFirstColumnFormatter(bold)
}

// PrintSectionHeader prints "icon title (count)" after a blank line.
func PrintSectionHeader(icon string, title string, count int) {
	OutputLine("\n%s %s (%d)", icon, title, count)
}
