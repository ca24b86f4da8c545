// Package export 把关键字目录导出为不带动画的静态 HTML 页面。
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/russross/blackfriday/v2"

	"github.com/Zacy-Sokach/PromptReplay/internal/catalog"
	"github.com/Zacy-Sokach/PromptReplay/internal/markdown"
)

const extensions = blackfriday.CommonExtensions

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #111827; color: #e5e7eb; font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
section { margin-bottom: 3rem; }
.prompt { background: #1f2937; border-radius: .75rem; padding: .75rem 1rem; margin: 1rem 0 .5rem auto; max-width: 80%; }
.response { line-height: 1.6; }
pre { background: #030712; padding: .75rem; border-radius: .5rem; overflow-x: auto; }
code { color: #d1d5db; }
details { color: #9ca3af; font-size: .875rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Sections}}<section id="{{.Name}}">
<h2>{{.Title}}</h2>
{{range .Entries}}<article>
<h3>{{.Keyword}}</h3>
<div class="prompt">{{.Prompt}}</div>
<div class="response">{{.Response}}</div>
{{if $.Fragments}}<details><summary>replay fragment</summary><div>{{.Fragment}}</div></details>
{{end}}</article>
{{end}}</section>
{{end}}</body>
</html>
`))

// Options 导出选项
type Options struct {
	Title string
	// Fragments 同时附上回放时显示的 HTML 片段
	Fragments bool
}

type pageData struct {
	Title     string
	Fragments bool
	Sections  []sectionData
}

type sectionData struct {
	Name    string
	Title   string
	Entries []entryData
}

type entryData struct {
	Keyword  string
	Prompt   string
	Response template.HTML
	Fragment template.HTML
}

// Render 把回答渲染为完整的 CommonMark HTML
func Render(text string) template.HTML {
	out := blackfriday.Run([]byte(text), blackfriday.WithExtensions(extensions))
	return template.HTML(out)
}

// Write 把整个目录写成一个 HTML 页面
func Write(w io.Writer, c *catalog.Catalog, opts Options) error {
	if opts.Title == "" {
		opts.Title = "PromptReplay"
	}

	data := pageData{Title: opts.Title, Fragments: opts.Fragments}
	for _, s := range c.Sections {
		sd := sectionData{Name: s.Name, Title: s.Title}
		if sd.Title == "" {
			sd.Title = s.Name
		}
		for _, e := range s.Entries {
			sd.Entries = append(sd.Entries, entryData{
				Keyword:  e.Keyword,
				Prompt:   e.Prompt,
				Response: Render(e.Response),
				Fragment: template.HTML(markdown.HTML(e.Response)),
			})
		}
		data.Sections = append(data.Sections, sd)
	}

	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("渲染页面失败: %w", err)
	}
	return nil
}

// WriteFile 导出到文件，path 为空时写到 stdout
func WriteFile(path string, c *catalog.Catalog, opts Options) error {
	if path == "" {
		return Write(os.Stdout, c, opts)
	}

	var buf bytes.Buffer
	if err := Write(&buf, c, opts); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	return nil
}
