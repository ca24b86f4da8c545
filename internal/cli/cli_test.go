package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zacy-Sokach/PromptReplay/internal/catalog"
)

const fastConfig = `timing:
  prompt: {min: 1ms, max: 1ms}
  response: {min: 1ms, max: 1ms}
  settle: 1ms
  restart_debounce: 1ms
  thinking_layout: 1ms
  thinking_gap: 1ms
  final_scroll: 1ms
  complete_delay: 1ms
`

// setup 隔离配置目录并写入快速节奏的配置文件
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PROMPTREPLAY_CONFIG_HOME", dir)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(fastConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "PromptReplay "+Version) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestPlayKeyword(t *testing.T) {
	cfg := setup(t)

	out, err := execute(t, "play", "--config", cfg, "--keyword", "education")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"education background", "思考中...", "Education Background"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayInlinePrompt(t *testing.T) {
	cfg := setup(t)

	out, err := execute(t, "play", "--config", cfg, "--prompt", "Hi", "--response", "Hello", "--topic", "skills")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "你: Hi") || !strings.Contains(out, "Hello") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPlayUnknownKeyword(t *testing.T) {
	cfg := setup(t)

	_, err := execute(t, "play", "--config", cfg, "--keyword", "does-not-exist")
	if !errors.Is(err, catalog.ErrUnknownKeyword) {
		t.Fatalf("expected ErrUnknownKeyword, got %v", err)
	}
}

func TestPlayRequiresInput(t *testing.T) {
	cfg := setup(t)
	if _, err := execute(t, "play", "--config", cfg); err == nil {
		t.Fatal("expected error without --keyword or --prompt")
	}
}

func TestExportToFile(t *testing.T) {
	cfg := setup(t)
	out := filepath.Join(t.TempDir(), "site", "index.html")

	if _, err := execute(t, "export", "--config", cfg, "--out", out, "--title", "Demo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !bytes.Contains(data, []byte("<title>Demo</title>")) {
		t.Error("title missing from export")
	}
}

func TestExportCustomCatalog(t *testing.T) {
	cfg := setup(t)
	catPath := filepath.Join(t.TempDir(), "catalog.yaml")
	data := "sections:\n  - name: demo\n    entries:\n      - keyword: Ping\n        prompt: ping?\n        response: pong\n"
	if err := os.WriteFile(catPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "export", "--config", cfg, "--catalog", catPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "ping?") || strings.Contains(out, "Education") {
		t.Errorf("export did not use the custom catalog:\n%s", out)
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROMPTREPLAY_CONFIG_HOME", dir)
	path := filepath.Join(dir, "nested", "config.yaml")

	out, err := execute(t, "init", "--config", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, filepath.Join(dir, "nested", "promptreplay.log")) {
		t.Errorf("init did not report the log path:\n%s", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}

	if _, err := execute(t, "init", "--config", path); err == nil {
		t.Fatal("expected error when file exists without --force")
	}
	if _, err := execute(t, "init", "--config", path, "--force"); err != nil {
		t.Fatalf("unexpected error with --force: %v", err)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROMPTREPLAY_CONFIG_HOME", dir)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("timing: [}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "export", "--config", path); err == nil {
		t.Fatal("expected error for invalid config")
	}
}
