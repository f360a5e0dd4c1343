package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/term"

	"github.com/skillpath/skillpath/internal/markup"
)

const (
	defaultWidth = 80
	minWidth     = 20
)

// TerminalWidth returns the width of stdout, or 80 when stdout is not a
// terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// TerminalRenderer draws a markup.Fragment with lipgloss styles.
type TerminalRenderer struct {
	styles *Styles
	width  int
}

// NewTerminalRenderer creates a renderer that wraps text at width columns.
// A width of zero uses TerminalWidth.
func NewTerminalRenderer(styles *Styles, width int) *TerminalRenderer {
	if width <= 0 {
		width = TerminalWidth()
	}
	return &TerminalRenderer{styles: styles, width: max(width, minWidth)}
}

// Width returns the wrap width.
func (r *TerminalRenderer) Width() int {
	return r.width
}

// SetWidth changes the wrap width, for example after a terminal resize.
func (r *TerminalRenderer) SetWidth(width int) {
	r.width = max(width, minWidth)
}

// Render draws each block of f and separates them with a blank line.
func (r *TerminalRenderer) Render(f markup.Fragment) string {
	blocks := make([]string, 0, len(f))
	for _, n := range f {
		if s := r.block(n); s != "" {
			blocks = append(blocks, s)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// RenderText renders message text with the default markup options.
func (r *TerminalRenderer) RenderText(text string) string {
	return r.Render(markup.Render(text))
}

func (r *TerminalRenderer) block(n *html.Node) string {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3:
		return r.wrap(r.styles.Heading.Render(r.inline(n)), 0)
	case atom.H4, atom.H5, atom.H6:
		return r.wrap(r.styles.Subheading.Render(r.inline(n)), 0)
	case atom.Ul, atom.Ol:
		return r.list(n)
	case atom.Blockquote:
		body := wordwrap.String(r.inline(n), r.width-2)
		return r.styles.Quote.Render(body)
	case atom.Pre:
		return r.code(n)
	case atom.Table:
		return r.table(n)
	default:
		return r.wrap(r.inline(n), 0)
	}
}

func (r *TerminalRenderer) wrap(s string, indentBy int) string {
	wrapped := wordwrap.String(s, r.width-indentBy)
	if indentBy == 0 {
		return wrapped
	}
	return indent.String(wrapped, uint(indentBy))
}

// inline renders the children of n, styling strong, em and code spans.
func (r *TerminalRenderer) inline(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			sb.WriteString(c.Data)
		case c.DataAtom == atom.Br:
			sb.WriteByte('\n')
		case c.DataAtom == atom.Strong:
			sb.WriteString(r.styles.Strong.Render(r.inline(c)))
		case c.DataAtom == atom.Em:
			sb.WriteString(r.styles.Emph.Render(r.inline(c)))
		case c.DataAtom == atom.Code:
			sb.WriteString(r.styles.Code.Render(r.inline(c)))
		default:
			sb.WriteString(r.inline(c))
		}
	}
	return sb.String()
}

func (r *TerminalRenderer) list(n *html.Node) string {
	var items []string
	num := 0
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.DataAtom != atom.Li {
			continue
		}
		num++
		marker := BulletIcon
		if n.DataAtom == atom.Ol {
			marker = strconv.Itoa(num) + "."
		}
		pad := runewidth.StringWidth(marker) + 1
		body := r.wrap(r.inline(li), pad)
		body = strings.TrimPrefix(body, strings.Repeat(" ", pad))
		items = append(items, r.styles.Marker.Render(marker)+" "+body)
	}
	return strings.Join(items, "\n")
}

func (r *TerminalRenderer) code(pre *html.Node) string {
	code := pre.FirstChild
	if code == nil {
		return ""
	}
	var body strings.Builder
	for c := code.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			body.WriteString(c.Data)
		}
	}
	out := r.styles.CodeBlock.Render(body.String())
	for _, a := range code.Attr {
		if a.Key == "class" && strings.HasPrefix(a.Val, "language-") {
			out = r.styles.CodeLabel.Render(strings.TrimPrefix(a.Val, "language-")) + "\n" + out
		}
	}
	return out
}

type tableCell struct {
	styled string
	width  int
}

func (r *TerminalRenderer) table(n *html.Node) string {
	var rows [][]tableCell
	header := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.DataAtom != atom.Tr {
				walk(c)
				continue
			}
			var row []tableCell
			for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
				text := strings.ReplaceAll(r.inline(cell), "\n", " ")
				plain := strings.ReplaceAll(plainText(cell), "\n", " ")
				if cell.DataAtom == atom.Th {
					text = r.styles.TableHeader.Render(text)
				}
				row = append(row, tableCell{styled: text, width: runewidth.StringWidth(plain)})
			}
			if n.DataAtom == atom.Thead {
				header++
			}
			rows = append(rows, row)
		}
	}
	walk(n)
	if len(rows) == 0 {
		return ""
	}

	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], c.width)
		}
	}

	border := r.styles.TableBorder
	sep := border.Render("│")
	var lines []string
	for i, row := range rows {
		var sb strings.Builder
		for j := range cols {
			if j > 0 {
				sb.WriteString(" " + sep + " ")
			}
			var c tableCell
			if j < len(row) {
				c = row[j]
			}
			sb.WriteString(c.styled)
			if j < cols-1 {
				sb.WriteString(strings.Repeat(" ", widths[j]-c.width))
			}
		}
		lines = append(lines, sb.String())
		if i == header-1 {
			parts := make([]string, cols)
			for j, w := range widths {
				parts[j] = strings.Repeat("─", w)
			}
			lines = append(lines, border.Render(strings.Join(parts, "─┼─")))
		}
	}
	return strings.Join(lines, "\n")
}

func plainText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.DataAtom == atom.Br {
		return "\n"
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(plainText(c))
	}
	return sb.String()
}
