package components

import (
	"strings"

	"github.com/mgatere/termfolio/ui/styles"
)

// RenderHeader lists every command name above a divider.
func RenderHeader(names []string, width int) string {
	header := styles.HeaderStyle(width).Render(strings.Join(names, " | "))
	if width <= 0 {
		return header
	}
	return header + "\n" + styles.DividerStyle().Render(strings.Repeat("─", width))
}
