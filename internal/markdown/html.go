package markdown

import "strings"

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// HTMLTheme 生成网页片段，类名与原站点样式保持一致
var HTMLTheme = Theme{
	Escape: htmlEscaper.Replace,
	Bold: func(s string) string {
		return `<strong class="font-semibold">` + s + `</strong>`
	},
	CodeBlock: func(s string) string {
		return `<pre class="bg-gray-900 p-3 rounded my-2 overflow-x-auto"><code class="text-sm text-gray-300">` + s + `</code></pre>`
	},
	InlineCode: func(s string) string {
		return `<code class="bg-gray-900 px-1.5 py-0.5 rounded text-sm text-gray-300">` + s + `</code>`
	},
	Heading: func(level int, s string) string {
		if level == 3 {
			return `<h3 class="text-lg font-semibold mt-4 mb-2 text-gray-100">` + s + `</h3>`
		}
		return `<h2 class="text-xl font-semibold mt-4 mb-2 text-gray-100">` + s + `</h2>`
	},
	Bullet: func(s string) string {
		return `<div class="flex items-start gap-2 my-1.5"><span class="text-gray-400 mt-1">•</span><span>` + s + `</span></div>`
	},
	Numbered: func(line string) string {
		return `<div class="my-1.5">` + line + `</div>`
	},
	Paragraph: "<br/><br/>",
	LineBreak: "<br/>",
}

// HTML 渲染为经过转义的 HTML 片段
func HTML(text string) string {
	return Render(text, HTMLTheme)
}
