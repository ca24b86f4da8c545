package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	boldStyle       = lipgloss.NewStyle().Bold(true)
	headingStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	subheadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Underline(true)
	codeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	bulletStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// stripControl 终端没有标记注入的问题，但控制字符会破坏屏幕，只保留换行和制表符
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// TerminalTheme 以 lipgloss 样式渲染，用于终端界面
var TerminalTheme = Theme{
	Escape:     stripControl,
	Bold:       func(s string) string { return boldStyle.Render(s) },
	CodeBlock:  func(s string) string { return codeStyle.Render(strings.Trim(s, "\n")) },
	InlineCode: func(s string) string { return codeStyle.Render(s) },
	Heading: func(level int, s string) string {
		if level == 3 {
			return headingStyle.Render(s)
		}
		return subheadingStyle.Render(s)
	},
	Bullet:    func(s string) string { return bulletStyle.Render("  •") + " " + s },
	Numbered:  func(line string) string { return "  " + line },
	Paragraph: "\n\n",
	LineBreak: "\n",
}

// Terminal 渲染为带 ANSI 样式的终端文本
func Terminal(text string) string {
	return Render(text, TerminalTheme)
}
