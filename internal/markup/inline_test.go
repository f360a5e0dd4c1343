package markup

import (
	"bytes"
	"testing"

	"golang.org/x/net/html"
)

func renderNodes(t *testing.T, nodes []*html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			t.Fatalf("render: %v", err)
		}
	}
	return buf.String()
}

func TestFormatInline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"bold", "a **b** c", "a <strong>b</strong> c"},
		{"italic", "a *b* c", "a <em>b</em> c"},
		{"code", "use `go test`", "use <code>go test</code>"},
		{"all three", "**B** *I* `C`", "<strong>B</strong> <em>I</em> <code>C</code>"},
		{"italic inside bold", "**a *b* c**", "<strong>a <em>b</em> c</strong>"},
		{"code inside bold", "**run `make`**", "<strong>run <code>make</code></strong>"},
		{"unmatched markers", "2 ** 3", "2 ** 3"},
		{"empty backticks", "``", "``"},
		{"angle brackets escaped", "**<i>x</i>**", "<strong>&lt;i&gt;x&lt;/i&gt;</strong>"},
		{"quotes escaped", `say "hi"`, "say &#34;hi&#34;"},
		{"multiple bolds", "**a** and **b**", "<strong>a</strong> and <strong>b</strong>"},
		{"asterisks in code", "`a*b*c`", "<code>a*b*c</code>"},
		{"pointer in code", "use `*ptr*` here", "use <code>*ptr*</code> here"},
		{"kwargs in code", "`**kwargs`", "<code>**kwargs</code>"},
		{"arithmetic in code", "compute `2 * 3 * 4` now", "compute <code>2 * 3 * 4</code> now"},
		{"italic beside code", "*x* and `*y*`", "<em>x</em> and <code>*y*</code>"},
		{"bold around code with stars", "**see `a*b`**", "<strong>see <code>a*b</code></strong>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderNodes(t, formatInline(tt.input))
			if got != tt.want {
				t.Errorf("formatInline(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatInlineEmpty(t *testing.T) {
	if nodes := formatInline(""); nodes != nil {
		t.Errorf("formatInline(\"\") = %v, want nil", nodes)
	}
}
