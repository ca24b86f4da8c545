package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zacy-Sokach/PromptReplay/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{Sections: []catalog.Section{{
		Name:  "demo",
		Title: "Demo",
		Entries: []catalog.Entry{{
			Keyword:  "Hi",
			Prompt:   "Say <hi>",
			Response: "### Greeting\n\n**Hello** there\n\n- one\n- two",
		}},
	}}}
}

func TestRender(t *testing.T) {
	out := string(Render("### Title\n\n**bold** and `code`"))
	for _, want := range []string{"<h3>Title</h3>", "<strong>bold</strong>", "<code>code</code>"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %s", want, out)
		}
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testCatalog(), Options{Title: "Portfolio", Fragments: true}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	checks := []string{
		"<title>Portfolio</title>",
		`<section id="demo">`,
		"<h2>Demo</h2>",
		"Say &lt;hi&gt;",
		"<li>one</li>",
		"<strong>Hello</strong>",
		`<strong class="font-semibold">Hello</strong>`,
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteWithoutFragments(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testCatalog(), Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<details>") {
		t.Error("fragments written without being requested")
	}
	if !strings.Contains(out, "<title>PromptReplay</title>") {
		t.Error("default title missing")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "index.html")
	if err := WriteFile(path, catalog.Default(), Options{}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("Education Background")) {
		t.Error("default catalog content missing from export")
	}
}

func TestRenderTightList(t *testing.T) {
	out := string(Render("- one\n- two"))
	if strings.Contains(out, "<br") {
		t.Errorf("tight list rendered with line breaks: %s", out)
	}
	for _, want := range []string{"<li>one</li>", "<li>two</li>"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %s", want, out)
		}
	}
}
