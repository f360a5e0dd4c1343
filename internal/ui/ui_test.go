package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/skillpath/skillpath/internal/markup"
	"github.com/skillpath/skillpath/internal/roadmap"
)

// plainStyles renders without escape codes because the output is not a
// terminal.
func plainStyles() *Styles {
	return NewStyledWithTheme(&bytes.Buffer{}, DefaultTheme())
}

func renderPlain(t *testing.T, text string, width int) string {
	t.Helper()
	return NewTerminalRenderer(plainStyles(), width).RenderText(text)
}

func TestTerminalRendererBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"paragraph", "Hello **bold** and *em* and `code`", "Hello bold and em and code"},
		{"line break", "one\ntwo", "one\ntwo"},
		{"heading", "# Title", "Title"},
		{"bullets", "* one\n* two", "• one\n• two"},
		{"ordered", "1. first\n7. second", "1. first\n2. second"},
		{"table", "A | B\n--|--\n1 | 22", "A │ B\n──┼───\n1 │ 22"},
		{"blocks separated", "First\n\nSecond", "First\n\nSecond"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderPlain(t, tt.input, 80)
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestTerminalRendererWraps(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor ", 10)
	got := renderPlain(t, text, 24)
	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped output, got %q", got)
	}
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > 24 {
			t.Errorf("line %q is %d cells wide", line, w)
		}
	}
}

func TestTerminalRendererListIndent(t *testing.T) {
	got := renderPlain(t, "* "+strings.Repeat("word ", 8), 20)
	lines := strings.Split(got, "\n")
	if !strings.HasPrefix(lines[0], "• word") {
		t.Errorf("first line = %q", lines[0])
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("continuation line %q is not indented", line)
		}
	}
}

func TestTerminalRendererCode(t *testing.T) {
	got := renderPlain(t, "```go\nfmt.Println(\"**x**\")\n```", 80)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 || lines[0] != "go" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(lines[1], `fmt.Println("**x**")`) {
		t.Errorf("code body = %q", lines[1])
	}
}

func TestTerminalRendererQuote(t *testing.T) {
	got := renderPlain(t, "> wise words", 80)
	if !strings.Contains(got, "wise words") || !strings.Contains(got, "┃") {
		t.Errorf("got %q", got)
	}
}

func TestTerminalRendererEmpty(t *testing.T) {
	if got := NewTerminalRenderer(plainStyles(), 40).Render(markup.Fragment{}); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestTerminalRendererMinWidth(t *testing.T) {
	r := NewTerminalRenderer(plainStyles(), 5)
	if r.Width() != minWidth {
		t.Errorf("Width() = %d, want %d", r.Width(), minWidth)
	}
	r.SetWidth(100)
	if r.Width() != 100 {
		t.Errorf("Width() = %d after SetWidth(100)", r.Width())
	}
}

func TestRoadmapTree(t *testing.T) {
	r, err := roadmap.Find("DevOps Engineer")
	if err != nil {
		t.Fatal(err)
	}
	got := plainStyles().RoadmapTree(r, false)

	if !strings.HasPrefix(got, r.Title+"\n"+r.Description) {
		t.Errorf("missing header:\n%s", got)
	}
	roadmap.Walk(r.Root, func(n *roadmap.Node, _ int) bool {
		if !strings.Contains(got, n.Title+" ["+string(n.Type)+"]") {
			t.Errorf("tree is missing %q", n.Title)
		}
		return true
	})
	if strings.Contains(got, r.Root.Children[0].Description) {
		t.Error("descriptions shown without details")
	}

	detailed := plainStyles().RoadmapTree(r, true)
	if !strings.Contains(detailed, r.Root.Children[0].Description) {
		t.Error("descriptions missing with details")
	}
}

func TestRoadmapTreeWithoutRoot(t *testing.T) {
	got := plainStyles().RoadmapTree(&roadmap.Roadmap{Title: "Empty"}, true)
	if got != "Empty" {
		t.Errorf("got %q", got)
	}
}

func TestThemeFromConfig(t *testing.T) {
	theme := ThemeFromConfig(ThemeConfig{Preset: "nord", Primary: "#ffffff"})
	if theme.Primary != lipgloss.Color("#ffffff") {
		t.Errorf("Primary = %v, want override", theme.Primary)
	}
	if theme.Secondary != lipgloss.Color("#81a1c1") || theme.Border != theme.Secondary {
		t.Errorf("Secondary = %v Border = %v, want nord", theme.Secondary, theme.Border)
	}

	def := ThemeFromConfig(ThemeConfig{Preset: "no-such-theme"})
	if *def != *DefaultTheme() {
		t.Errorf("unknown preset should fall back to the default theme")
	}
}

func TestPresetThemeNames(t *testing.T) {
	names := PresetThemeNames()
	if len(names) != len(PresetThemes) || names[0] != "classic" {
		t.Errorf("PresetThemeNames() = %v", names)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("a long chat title", 10); got != "a long ..." {
		t.Errorf("got %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	if got := RenderMarkdown("", 80); got != "" {
		t.Errorf("empty input rendered as %q", got)
	}
	got := RenderMarkdown("# Report\n\nSome **text**.", 80)
	if !strings.Contains(got, "Report") || !strings.Contains(got, "text") {
		t.Errorf("got %q", got)
	}
}

func TestReportRendererFollowsTheme(t *testing.T) {
	prev := GetTheme()
	t.Cleanup(func() { SetTheme(prev) })

	SetTheme(ThemeFromConfig(ThemeConfig{Preset: "gruvbox"}))
	first, err := reportRenderer(60)
	if err != nil {
		t.Fatal(err)
	}
	again, err := reportRenderer(60)
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Error("same width and theme built a second renderer")
	}

	SetTheme(ThemeFromConfig(ThemeConfig{Preset: "nord"}))
	switched, err := reportRenderer(60)
	if err != nil {
		t.Fatal(err)
	}
	if switched == first {
		t.Error("renderer reused after the theme changed")
	}
	if n := len(reportRenderers); n != 1 {
		t.Errorf("%d cached renderers, want 1", n)
	}
}
