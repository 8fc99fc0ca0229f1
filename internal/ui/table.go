package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable renders rows under headers as a bordered table no wider than
// width. Long cells wrap inside their column.
func RenderTable(headers []string, rows [][]string, width int) string {
	if width <= 0 {
		width = DefaultTermWidth
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Muted).
		Headers(headers...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Inherit(AccentBold)
			}
			return style
		})

	return t.Render() + "\n"
}
