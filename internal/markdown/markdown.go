// Package markdown 将受限的 Markdown 子集转换为可直接显示的标记。
//
// 规则按固定顺序逐条应用在整段文本上，因此可以对不断增长的前缀反复调用：
// 未闭合的 ** 或 ``` 只会保持原样，直到闭合符号出现。
package markdown

import (
	"regexp"
	"strings"
)

var (
	boldPattern       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	codeBlockPattern  = regexp.MustCompile("(?s)```(.*?)```")
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	h3Pattern         = regexp.MustCompile(`(?m)^###\s(.+)$`)
	h2Pattern         = regexp.MustCompile(`(?m)^##\s(.+)$`)
	bulletPattern     = regexp.MustCompile(`(?m)^[-•]\s(.+)$`)
	numberedPattern   = regexp.MustCompile(`(?m)^\d+\.\s(.+)$`)
)

// Theme 决定每条规则产出的标记
type Theme struct {
	Escape     func(string) string
	Bold       func(string) string
	CodeBlock  func(string) string
	InlineCode func(string) string
	Heading    func(level int, text string) string
	Bullet     func(string) string
	// Numbered 接收整行（包括序号），列表结构保持不变
	Numbered  func(line string) string
	Paragraph string
	LineBreak string
}

// Render 使用给定主题渲染文本
func Render(text string, th Theme) string {
	if text == "" {
		return ""
	}

	out := th.Escape(text)
	out = replaceGroup(boldPattern, out, th.Bold)
	out = replaceGroup(codeBlockPattern, out, th.CodeBlock)
	out = replaceGroup(inlineCodePattern, out, th.InlineCode)
	out = replaceGroup(h3Pattern, out, func(s string) string { return th.Heading(3, s) })
	out = replaceGroup(h2Pattern, out, func(s string) string { return th.Heading(2, s) })
	out = replaceGroup(bulletPattern, out, th.Bullet)
	out = numberedPattern.ReplaceAllStringFunc(out, th.Numbered)

	out = strings.ReplaceAll(out, "\n\n", th.Paragraph)
	out = strings.ReplaceAll(out, "\n", th.LineBreak)
	return out
}

// replaceGroup 用 fn 处理每个匹配的第一个捕获组
func replaceGroup(re *regexp.Regexp, s string, fn func(string) string) string {
	return re.ReplaceAllStringFunc(s, func(match string) string {
		sub := re.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		return fn(sub[1])
	})
}
