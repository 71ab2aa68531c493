package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/shutterdesk/studio/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, true, false).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	outsideMonthStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	hourStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(6)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Bold(true)

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Padding(0, 1)

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Padding(0, 1)

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Padding(0, 1)
)

var statusColors = map[string]lipgloss.Color{
	"yellow": lipgloss.Color("220"),
	"green":  lipgloss.Color("42"),
	"blue":   lipgloss.Color("39"),
	"red":    lipgloss.Color("196"),
	"gray":   lipgloss.Color("245"),
}

func statusStyle(s models.BookingStatus) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(statusColors[s.Color()])
}

func badge(s models.BookingStatus) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(statusColors[s.Color()]).
		Padding(0, 1).
		Render(string(s))
}
