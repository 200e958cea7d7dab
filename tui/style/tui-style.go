package style

import (
	"github.com/charmbracelet/lipgloss"

	"prioritizer/internal/infrastructure/config"
)

var (
	SectionStyle        lipgloss.Style
	FocusedSectionStyle lipgloss.Style
	SectionTitleStyle   lipgloss.Style
	TaskStyle           lipgloss.Style
	SelectedTaskStyle   lipgloss.Style
	DraggedTaskStyle    lipgloss.Style
	DropMarkerStyle     lipgloss.Style
	HelpStyle           lipgloss.Style
	StatusStyle         lipgloss.Style
	DueDateStyle        lipgloss.Style
	OverdueStyle        lipgloss.Style
	CompletedStyle      lipgloss.Style

	PriorityColors map[string]lipgloss.Color
)

func init() {
	InitStyles(config.Default(""))
}

// InitStyles initializes the styles from config
func InitStyles(cfg *config.Config) {
	styles := cfg.TUI.Styles

	SectionStyle = sectionStyle(styles.Section)
	FocusedSectionStyle = sectionStyle(styles.FocusedSection)

	SectionTitleStyle = textStyle(styles.SectionTitle)
	TaskStyle = textStyle(styles.Task)
	SelectedTaskStyle = textStyle(styles.SelectedTask)
	DraggedTaskStyle = textStyle(styles.DraggedTask)
	DropMarkerStyle = textStyle(styles.DropMarker)
	StatusStyle = textStyle(styles.Status)
	DueDateStyle = textStyle(styles.DueDate)
	OverdueStyle = textStyle(styles.Overdue)
	CompletedStyle = textStyle(styles.Completed)

	// Help style
	HelpStyle = lipgloss.NewStyle().
		Padding(styles.Help.PaddingVertical, 0, 0, styles.Help.PaddingHorizontal)
	if styles.Help.Foreground != "" {
		HelpStyle = HelpStyle.Foreground(lipgloss.Color(styles.Help.Foreground))
	}

	PriorityColors = map[string]lipgloss.Color{
		"high":   lipgloss.Color(styles.Priority.High),
		"medium": lipgloss.Color(styles.Priority.Medium),
		"low":    lipgloss.Color(styles.Priority.Low),
	}
}

func sectionStyle(s config.SectionStyle) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(s.PaddingVertical, s.PaddingHorizontal).
		Border(getBorder(s.BorderStyle)).
		BorderForeground(lipgloss.Color(s.BorderColor))
}

func textStyle(s config.TextStyle) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(s.PaddingVertical, s.PaddingHorizontal)
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		st = st.Background(lipgloss.Color(s.Background))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Strikethrough {
		st = st.Strikethrough(true)
	}
	if s.Align != "" {
		st = st.Align(getAlign(s.Align))
	}
	return st
}

// getBorder returns the border style based on the name
func getBorder(name string) lipgloss.Border {
	switch name {
	case "rounded":
		return lipgloss.RoundedBorder()
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// getAlign returns the alignment based on the name
func getAlign(name string) lipgloss.Position {
	switch name {
	case "left":
		return lipgloss.Left
	case "center":
		return lipgloss.Center
	case "right":
		return lipgloss.Right
	default:
		return lipgloss.Center
	}
}
