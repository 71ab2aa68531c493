package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shutterdesk/studio/internal/calendar"
)

const maxMonthEntries = 2

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state == StateCreate && m.form != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New appointment"),
			m.form.View(),
			m.statusLine(),
		)
	}

	view := m.builder.Build(m.cursor, m.entries())
	var body string
	switch {
	case view.Week != nil:
		body = m.renderWeek(*view.Week)
	case view.Day != nil:
		body = m.renderDay(*view.Day)
	default:
		body = m.renderMonth(*view.Month)
	}

	vp := m.viewport
	vp.SetContent(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(view.Title),
		vp.View(),
		m.statusLine(),
		m.help.View(m.keys),
	)
}

func (m Model) header(title string) string {
	var tabs []string
	for _, mode := range []calendar.Mode{calendar.ModeMonth, calendar.ModeWeek, calendar.ModeDay} {
		label := strings.ToUpper(string(mode[:1])) + string(mode[1:])
		if mode == m.cursor.Mode {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render(title), "  ", lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) statusLine() string {
	var parts []string
	if m.busy != "" {
		parts = append(parts, busyStyle.Render(m.spinner.View()+" "+m.busy))
	} else if m.loading {
		parts = append(parts, busyStyle.Render(m.spinner.View()+" Loading..."))
	}
	if m.toast != "" {
		if m.toastErr {
			parts = append(parts, toastErrorStyle.Render(m.toast))
		} else {
			parts = append(parts, toastStyle.Render(m.toast))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) cellWidth() int {
	if m.width <= 0 {
		return 14
	}
	return max((m.width-2)/7-3, 8)
}

func (m Model) renderMonth(grid calendar.MonthGrid) string {
	width := m.cellWidth()
	header := make([]string, 0, 7)
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		header = append(header, lipgloss.NewStyle().Width(width+3).Bold(true).Render(d))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, week := range grid.Weeks() {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			cells = append(cells, cellStyle.Width(width).Height(maxMonthEntries+2).Render(m.monthCell(day, width)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) monthCell(day calendar.Day, width int) string {
	num := fmt.Sprintf("%2d", day.Date.Day())
	switch {
	case day.IsToday:
		num = todayStyle.Render(num)
	case !day.InMonth:
		num = outsideMonthStyle.Render(num)
	}

	lines := []string{num}
	for i, e := range day.Entries {
		if i == maxMonthEntries {
			lines = append(lines, outsideMonthStyle.Render(fmt.Sprintf("+%d more", len(day.Entries)-maxMonthEntries)))
			break
		}
		label := fmt.Sprintf("%s %s", e.At.In(m.builder.Location()).Format("15:04"), e.Client)
		lines = append(lines, statusStyle(e.Status).Render(truncate(label, width)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderWeek(grid calendar.WeekGrid) string {
	width := m.cellWidth()
	header := []string{hourStyle.Render("")}
	for _, col := range grid.Days {
		label := col.Date.Format("Mon 2")
		if col.IsToday {
			label = todayStyle.Render(label)
		}
		header = append(header, lipgloss.NewStyle().Width(width+1).Bold(true).Render(label))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for i, hour := range calendar.Hours() {
		row := []string{hourStyle.Render(fmt.Sprintf("%02d:00", hour))}
		for _, col := range grid.Days {
			row = append(row, lipgloss.NewStyle().Width(width+1).Render(m.slotLabel(col.Slots[i], width)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) slotLabel(slot calendar.HourSlot, width int) string {
	switch len(slot.Entries) {
	case 0:
		return outsideMonthStyle.Render("·")
	case 1:
		e := slot.Entries[0]
		return statusStyle(e.Status).Render(truncate(e.Client, width))
	default:
		e := slot.Entries[0]
		return statusStyle(e.Status).Render(truncate(fmt.Sprintf("%s +%d", e.Client, len(slot.Entries)-1), width))
	}
}

func (m Model) renderDay(grid calendar.DayGrid) string {
	var lines []string
	idx := 0
	for _, slot := range grid.Slots {
		hour := hourStyle.Render(fmt.Sprintf("%02d:00", slot.Hour))
		if len(slot.Entries) == 0 {
			lines = append(lines, hour+outsideMonthStyle.Render("·"))
			continue
		}
		for i, e := range slot.Entries {
			prefix := hour
			if i > 0 {
				prefix = hourStyle.Render("")
			}
			line := fmt.Sprintf("%s %s · %s · %dm @ %s",
				e.At.In(m.builder.Location()).Format("15:04"), e.Client, e.Service, e.Duration, e.Location)
			line = prefix + line + " " + badge(e.Status)
			if idx == m.selected {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
			idx++
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
