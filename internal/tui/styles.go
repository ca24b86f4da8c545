package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	sectionStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	activeSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236")).Padding(0, 1)

	chipStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	activeChipStyle = chipStyle.Foreground(lipgloss.Color("12")).BorderForeground(lipgloss.Color("12"))
	// 光标所在的按钮
	focusChipStyle = chipStyle.Foreground(lipgloss.Color("15")).BorderForeground(lipgloss.Color("250"))

	userLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	aiLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("235")).Padding(0, 1)
	thinkingStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	dotStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	promptCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	responseCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	copyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	copiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const cursorGlyph = "▋"
