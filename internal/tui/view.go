package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Zacy-Sokach/PromptReplay/internal/markdown"
	"github.com/Zacy-Sokach/PromptReplay/internal/replay"
)

func (m *Model) View() string {
	if !m.ready {
		return "初始化中..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.viewport.View(),
		m.helpView(),
	)
}

// chromeHeight 除 viewport 以外占用的行数
func chromeHeight(m *Model) int {
	return lipgloss.Height(m.headerView()) + lipgloss.Height(m.helpView())
}

func (m *Model) headerView() string {
	title := "PromptReplay"
	if Version != "" {
		title += " " + Version
	}

	tabs := make([]string, 0, len(m.catalog.Sections))
	for i, s := range m.catalog.Sections {
		name := s.Title
		if name == "" {
			name = s.Name
		}
		if i == m.section {
			tabs = append(tabs, activeSectionStyle.Render(name))
		} else {
			tabs = append(tabs, sectionStyle.Render(name))
		}
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render(title)+"  ", strings.Join(tabs, ""))
	return lipgloss.JoinVertical(lipgloss.Left, top, m.chipsView())
}

func (m *Model) chipsView() string {
	s, ok := m.currentSection()
	if !ok || len(s.Entries) == 0 {
		return hintStyle.Render("这个区域没有关键字")
	}

	chips := make([]string, 0, len(s.Entries))
	for i, e := range s.Entries {
		label := e.Keyword
		style := chipStyle
		switch {
		case e.Keyword == m.active && m.owner == m.section:
			label = "✦ " + label
			style = activeChipStyle
		case i == m.chip:
			style = focusChipStyle
		}
		if i == m.chip {
			label = "› " + label
		}
		chips = append(chips, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m *Model) helpView() string {
	if m.widget.IsOpen() && m.state.Phase.Active() {
		status := thinkingStyle.Render(m.state.Phase.String())
		return lipgloss.JoinHorizontal(lipgloss.Top, status+"  ", m.help.View(m.keys))
	}
	return m.help.View(m.keys)
}

func (m *Model) wrapWidth() int {
	return max(20, m.viewport.Width-2)
}

func (m *Model) conversationView() string {
	if !m.widget.IsOpen() {
		return hintStyle.Render("选择一个关键字，按 Enter 提问")
	}

	s := m.state
	width := m.wrapWidth()
	var b strings.Builder

	if s.RevealedPrompt != "" || s.Phase == replay.PhaseTypingPrompt {
		b.WriteString(userLabelStyle.Render("你"))
		b.WriteString("\n")
		bubble := wordwrap.String(s.RevealedPrompt, max(16, width*4/5))
		b.WriteString(promptStyle.Render(bubble))
		if s.Phase == replay.PhaseTypingPrompt && !s.Settling {
			b.WriteString(promptCursorStyle.Render(cursorGlyph))
		}
	}

	// 思考消息只在思考阶段显示
	if s.Phase == replay.PhaseThinking && len(s.Thinking) > 0 {
		b.WriteString("\n\n")
		b.WriteString(aiLabelStyle.Render("AI"))
		for i, msg := range s.Thinking {
			dots := dotStyle.Render("•••")
			if i == len(s.Thinking)-1 {
				dots = m.spinner.View()
			}
			b.WriteString("\n")
			b.WriteString(dots + " " + thinkingStyle.Render(wordwrap.String(msg, max(10, width-6))))
		}
	}

	streaming := s.Phase == replay.PhaseStreamingResponse
	if s.RevealedResponse != "" || streaming {
		b.WriteString("\n\n")
		b.WriteString(aiLabelStyle.Render("AI"))
		if m.widget.CanCopy() {
			if m.widget.Copied() {
				b.WriteString("  " + copiedStyle.Render("✓ 已复制"))
			} else {
				b.WriteString("  " + copyStyle.Render("[c] 复制"))
			}
		}
		b.WriteString("\n")
		body := markdown.Terminal(s.RevealedResponse)
		if streaming {
			body += responseCursorStyle.Render(cursorGlyph)
		}
		b.WriteString(wordwrap.String(body, width))
	}

	return b.String()
}
