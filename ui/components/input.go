package components

import (
	"github.com/mgatere/termfolio/ui/styles"
)

const cursorGlyph = " "

// RenderInput draws the prompt and the input line split at the cursor. The cursor
// is hidden while input is not accepted.
func RenderInput(prompt, before, after string, active bool) string {
	line := styles.PromptStyle().Render(prompt)
	text := styles.CommandStyle()

	if !active {
		return line + text.Render(before+after)
	}

	under := cursorGlyph
	runes := []rune(after)
	if len(runes) > 0 {
		under = string(runes[0])
		after = string(runes[1:])
	}
	return line + text.Render(before) + styles.CursorStyle().Render(under) + text.Render(after)
}
