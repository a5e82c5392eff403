package styles

import "github.com/charmbracelet/lipgloss"

func HeaderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Padding(0, 1).
		Width(width)
}

func DividerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("28"))
}

func PromptStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		MarginRight(1)
}

func CommandStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))
}

func ResponseStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255"))
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))
}

func LinkStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("75")).
		Underline(true)
}

func CursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("42"))
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}
