package markup

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Kind identifies which block rule rendered a block.
type Kind int

const (
	Paragraph Kind = iota
	Code
	Table
	Quote
	Heading1
	Heading2
	BulletList
	OrderedList
)

var kindNames = [...]string{
	Paragraph:   "paragraph",
	Code:        "code",
	Table:       "table",
	Quote:       "quote",
	Heading1:    "heading1",
	Heading2:    "heading2",
	BulletList:  "bullet_list",
	OrderedList: "ordered_list",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Fragment is a rendered document: an ordered list of top-level block
// elements. Text content is only ever stored in text nodes, so serializing
// a Fragment escapes everything the input contained.
type Fragment []*html.Node

// Render serializes the fragment as HTML.
func (f Fragment) Render(w io.Writer) error {
	for _, n := range f {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

// HTML returns the serialized fragment.
func (f Fragment) HTML() string {
	var buf bytes.Buffer
	_ = f.Render(&buf) // bytes.Buffer writes never fail
	return buf.String()
}

// Text returns the plain text of the fragment with blocks separated by a
// blank line and line breaks kept as newlines.
func (f Fragment) Text() string {
	parts := make([]string, 0, len(f))
	for _, n := range f {
		var sb strings.Builder
		collectText(&sb, n)
		parts = append(parts, strings.TrimSpace(sb.String()))
	}
	return strings.Join(parts, "\n\n")
}

func collectText(sb *strings.Builder, n *html.Node) {
	switch {
	case n.Type == html.TextNode:
		sb.WriteString(n.Data)
		return
	case n.DataAtom == atom.Br:
		sb.WriteByte('\n')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
		if c.NextSibling != nil && isRowLike(c.DataAtom) {
			sb.WriteByte('\n')
		}
		if c.NextSibling != nil && isCell(c.DataAtom) {
			sb.WriteString(" | ")
		}
	}
}

func isRowLike(a atom.Atom) bool {
	return a == atom.Li || a == atom.Tr || a == atom.Thead || a == atom.Tbody
}

func isCell(a atom.Atom) bool {
	return a == atom.Th || a == atom.Td
}

// Renderer turns message text into a Fragment. A Renderer holds only
// options and is safe for concurrent use.
type Renderer struct {
	headingLevel int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHeadingLevel sets the HTML level used for "# " headings. "## "
// headings render one level deeper. Values are clamped to 1..5.
func WithHeadingLevel(level int) Option {
	return func(r *Renderer) {
		r.headingLevel = min(max(level, 1), 5)
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{headingLevel: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HeadingLevel reports the level used for "# " headings.
func (r *Renderer) HeadingLevel() int {
	return r.headingLevel
}

// Render splits text into blocks and renders each one with the first
// matching rule. It never fails; malformed input degrades to paragraphs
// or code.
func (r *Renderer) Render(text string) Fragment {
	blocks := Blocks(text)
	out := make(Fragment, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, r.renderBlock(block))
	}
	return out
}

// RenderHTML is shorthand for Render(text).HTML().
func (r *Renderer) RenderHTML(text string) string {
	return r.Render(text).HTML()
}

var defaultRenderer = New()

// Render renders text with the default options.
func Render(text string) Fragment {
	return defaultRenderer.Render(text)
}

// RenderHTML renders text with the default options and serializes it.
func RenderHTML(text string) string {
	return defaultRenderer.RenderHTML(text)
}

func element(a atom.Atom, kids ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, k := range kids {
		n.AppendChild(k)
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendAll(parent *html.Node, kids []*html.Node) *html.Node {
	for _, k := range kids {
		parent.AppendChild(k)
	}
	return parent
}
