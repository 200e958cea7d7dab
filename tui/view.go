package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"prioritizer/internal/application/dto"
	"prioritizer/tui/style"
)

// linesPerTask is the rendered height of a task row: title plus details
const linesPerTask = 2

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	numSections := len(m.board.Sections)
	if numSections == 0 {
		return "No sections"
	}
	// Each section has 2 border chars + 2 padding, plus some margin
	totalOverhead := numSections * 6
	availableWidth := m.width - totalOverhead
	if availableWidth < numSections*20 {
		availableWidth = numSections * 20
	}
	sectionWidth := availableWidth / numSections

	// Subtract: help and status (3 lines), title (2 lines), borders (2 lines)
	availableTaskHeight := m.height - 8
	maxVisible := availableTaskHeight / linesPerTask
	if maxVisible < 1 {
		maxVisible = 1
	}
	m.updateScroll(maxVisible)

	activeID, dragging := m.dragging()

	var sections []string
	for i, section := range m.board.Sections {
		sections = append(sections, m.renderSection(section, i, sectionWidth, maxVisible, activeID, dragging))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, sections...)
	return lipgloss.JoinVertical(lipgloss.Left, board, m.renderStatus(), m.renderHelp())
}

// renderSection renders a single section with scrolling support
func (m Model) renderSection(section dto.SectionDTO, index, width, maxVisible int, activeID string, dragging bool) string {
	isFocused := index == m.focusedSection

	header := fmt.Sprintf("%s (%d)", section.Title, len(section.Tasks))
	title := style.SectionTitleStyle.Width(width).Render(header)
	if isFocused && m.focusedTask == headerRow {
		title = style.SelectedTaskStyle.Width(width).Render(header)
	}

	scrollOffset := 0
	if index < len(m.scrollOffsets) {
		scrollOffset = m.scrollOffsets[index]
	}
	endIdx := scrollOffset + maxVisible
	if endIdx > len(section.Tasks) {
		endIdx = len(section.Tasks)
	}

	var rows []string
	if scrollOffset > 0 {
		rows = append(rows, scrollIndicator("▲ more above ▲", width))
	}

	for i := scrollOffset; i < endIdx; i++ {
		task := section.Tasks[i]
		isSelected := isFocused && i == m.focusedTask

		if dragging && isSelected && task.ID != activeID {
			rows = append(rows, style.DropMarkerStyle.Render("▸ drop here"))
		}
		rows = append(rows, renderTask(task, width, isSelected, dragging && task.ID == activeID))
	}

	if endIdx < len(section.Tasks) {
		rows = append(rows, scrollIndicator("▼ more below ▼", width))
	}

	if len(section.Tasks) == 0 {
		rows = append(rows, style.TaskStyle.Width(width).Foreground(lipgloss.Color("240")).Render("(empty)"))
	}
	if dragging && isFocused && m.focusedTask == headerRow {
		rows = append(rows, style.DropMarkerStyle.Render("▸ drop at end"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", strings.Join(rows, "\n"))

	if isFocused {
		return style.FocusedSectionStyle.Height(m.height - 6).Render(content)
	}
	return style.SectionStyle.Height(m.height - 6).Render(content)
}

// renderTask renders a task as a title line and a detail line
func renderTask(task dto.TaskDTO, width int, selected, held bool) string {
	marker := lipgloss.NewStyle().Foreground(style.PriorityColors[task.Priority]).Render("●")

	titleStyle := style.TaskStyle
	switch {
	case held:
		titleStyle = style.DraggedTaskStyle
	case selected:
		titleStyle = style.SelectedTaskStyle
	case task.Status == "completed":
		titleStyle = style.CompletedStyle
	}
	title := titleStyle.Width(width - 2).Render(truncate(task.Title, width-4))

	var details []string
	if task.Status != "todo" {
		details = append(details, task.Status)
	}
	if task.DueDate != nil {
		due := "due " + task.DueDate.Format(dto.DateLayout)
		if task.IsOverdue {
			details = append(details, style.OverdueStyle.Render(due))
		} else {
			details = append(details, style.DueDateStyle.Render(due))
		}
	}
	if n := len(task.Notes); n > 0 {
		details = append(details, fmt.Sprintf("%d note(s)", n))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, marker, " ", title),
		"  "+style.DueDateStyle.Render(strings.Join(details, " · ")),
	)
}

func scrollIndicator(text string, width int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		Width(width).
		Align(lipgloss.Center).
		Render(text)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit < 1 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// renderStatus shows the last error or action
func (m Model) renderStatus() string {
	if m.err != nil {
		return style.OverdueStyle.Render("error: " + m.err.Error())
	}
	return style.StatusStyle.Render(m.status)
}

// renderHelp renders the help text at the bottom
func (m Model) renderHelp() string {
	return style.HelpStyle.Render(m.help.View(keys))
}
