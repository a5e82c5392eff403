package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mgatere/termfolio/internal/format"
	"github.com/mgatere/termfolio/internal/history"
	"github.com/mgatere/termfolio/ui/styles"
)

// RenderHistory renders the transcript. dots is the loading animation frame.
func RenderHistory(entries []history.Entry, prompt string, dots int) string {
	var b strings.Builder

	promptStyle := styles.PromptStyle()
	commandStyle := styles.CommandStyle()

	for _, entry := range entries {
		b.WriteString(promptStyle.Render(prompt))
		b.WriteString(commandStyle.Render(entry.Command))
		b.WriteString("\n")

		switch {
		case entry.IsLoading:
			b.WriteString(renderLoading(entry.Response.String(), dots))
		case entry.IsError:
			b.WriteString(styles.ErrorStyle().Render(entry.Response.String()))
		default:
			b.WriteString(RenderResponse(entry.Response))
		}
		b.WriteString("\n\n")
	}

	return b.String()
}

// RenderResponse renders text segments plainly and link segments as OSC 8
// hyperlinks, so terminals that support them make the text clickable.
func RenderResponse(resp format.Response) string {
	textStyle := styles.ResponseStyle()
	if resp.Kind == format.PlainText {
		return renderText(textStyle, resp.Text)
	}

	linkStyle := styles.LinkStyle()
	var b strings.Builder
	for _, seg := range resp.Segments {
		switch seg.Kind {
		case format.LinkSegment:
			b.WriteString(termenv.Hyperlink(seg.Href, linkStyle.Render(seg.Value)))
		default:
			b.WriteString(renderText(textStyle, seg.Value))
		}
	}
	return b.String()
}

// renderText styles line by line so that newlines inside a segment survive.
func renderText(style lipgloss.Style, text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func renderLoading(text string, dots int) string {
	notFound, rest, _ := strings.Cut(text, "\n")
	out := styles.ErrorStyle().Render(notFound)
	if rest != "" {
		out += "\n" + styles.ResponseStyle().Render(rest+strings.Repeat(".", dots))
	}
	return out
}
