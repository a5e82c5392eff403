package components

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/charmbracelet/lipgloss"

	"github.com/mgatere/termfolio/ui/styles"
)

// Location resolves the owner's timezone, falling back to local time.
func Location(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

// Clock formats now in loc for the footer.
func Clock(now time.Time, loc *time.Location) string {
	return now.In(loc).Format("Mon 02 Jan 15:04:05 MST")
}

func RenderStatus(status string, loading bool, loadingDots int, clock string, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if loading {
		statusContent += strings.Repeat(".", loadingDots)
	}

	if clock != "" && width > 0 {
		gap := width - 2 - lipgloss.Width(statusContent) - lipgloss.Width(clock)
		if gap > 0 {
			statusContent += strings.Repeat(" ", gap) + clock
		}
	}

	return statusStyle.Render(statusContent)
}
