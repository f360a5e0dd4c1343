package markup

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const fence = "```"

var (
	blockSep       = regexp.MustCompile(`\n\s*\n`)
	tableSeparator = regexp.MustCompile(`^\|?[-|:\s]+$`)
	orderedMarker  = regexp.MustCompile(`^\d+\.\s`)
	quoteMarker    = regexp.MustCompile(`^>\s?`)
)

// Blocks splits text into blank-line separated blocks. Whitespace-only
// blocks are dropped.
func Blocks(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := blockSep.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

type rule struct {
	kind   Kind
	match  func(block string) bool
	render func(r *Renderer, block string) *html.Node
}

// rules is evaluated top to bottom; the first match wins and paragraph
// is the fallback.
var rules = []rule{
	{Code, isFencedCode, (*Renderer).codeBlock},
	{Table, isTable, (*Renderer).table},
	{Quote, isQuote, (*Renderer).quote},
	{Heading1, isHeading1, (*Renderer).heading1},
	{Heading2, isHeading2, (*Renderer).heading2},
	{BulletList, isBulletList, (*Renderer).bulletList},
	{OrderedList, isOrderedList, (*Renderer).orderedList},
}

// Classify reports the kind of a single block.
func Classify(block string) Kind {
	for _, rl := range rules {
		if rl.match(block) {
			return rl.kind
		}
	}
	return Paragraph
}

func (r *Renderer) renderBlock(block string) *html.Node {
	for _, rl := range rules {
		if rl.match(block) {
			return rl.render(r, block)
		}
	}
	return r.paragraph(block)
}

func isFencedCode(block string) bool { return strings.HasPrefix(block, fence) }

func isTable(block string) bool {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	return len(lines) >= 2 && tableSeparator.MatchString(strings.TrimSpace(lines[1]))
}

func isQuote(block string) bool    { return strings.HasPrefix(block, "> ") }
func isHeading1(block string) bool { return strings.HasPrefix(block, "# ") }
func isHeading2(block string) bool { return strings.HasPrefix(block, "## ") }

func isBulletList(block string) bool {
	return strings.HasPrefix(strings.TrimSpace(block), "* ")
}

func isOrderedList(block string) bool {
	return orderedMarker.MatchString(strings.TrimSpace(block))
}

func (r *Renderer) codeBlock(block string) *html.Node {
	info, body, ok := strings.Cut(block, "\n")
	if !ok {
		info, body = fence, strings.TrimPrefix(block, fence)
	}
	body = strings.TrimRight(body, " \t\n")
	body = strings.TrimSuffix(body, fence)
	body = strings.Trim(body, "\n")

	code := element(atom.Code)
	if lang := strings.TrimSpace(strings.TrimPrefix(info, fence)); lang != "" && !strings.Contains(lang, fence) {
		code.Attr = []html.Attribute{{Key: "class", Val: "language-" + strings.Fields(lang)[0]}}
	}
	if body != "" {
		code.AppendChild(textNode(body))
	}
	return element(atom.Pre, code)
}

func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func (r *Renderer) table(block string) *html.Node {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	header := splitRow(lines[0])
	width := len(header)

	head := element(atom.Tr)
	for _, cell := range header {
		head.AppendChild(appendAll(element(atom.Th), formatInline(cell)))
	}
	tbl := element(atom.Table, element(atom.Thead, head))

	var body *html.Node
	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitRow(line)
		row := element(atom.Tr)
		for i := range width {
			td := element(atom.Td)
			if i < len(cells) {
				appendAll(td, formatInline(cells[i]))
			}
			row.AppendChild(td)
		}
		if body == nil {
			body = element(atom.Tbody)
		}
		body.AppendChild(row)
	}
	if body != nil {
		tbl.AppendChild(body)
	}
	return tbl
}

func (r *Renderer) quote(block string) *html.Node {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = quoteMarker.ReplaceAllString(line, "")
	}
	return appendAll(element(atom.Blockquote), formatLines(lines))
}

func (r *Renderer) heading(level int, text string) *html.Node {
	return appendAll(element(headingAtoms[level-1]), formatLines(strings.Split(text, "\n")))
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func (r *Renderer) heading1(block string) *html.Node {
	return r.heading(r.headingLevel, strings.TrimPrefix(block, "# "))
}

func (r *Renderer) heading2(block string) *html.Node {
	return r.heading(r.headingLevel+1, strings.TrimPrefix(block, "## "))
}

func (r *Renderer) bulletList(block string) *html.Node {
	return listOf(atom.Ul, block, dropMarker)
}

// dropMarker removes the first two characters of a bullet line whether or
// not they are "* ", so "- b" inside a bullet block becomes "b".
func dropMarker(line string) string {
	for i := range line {
		if i >= 2 {
			return line[i:]
		}
	}
	return ""
}

func (r *Renderer) orderedList(block string) *html.Node {
	return listOf(atom.Ol, block, func(line string) string {
		return orderedMarker.ReplaceAllString(line, "")
	})
}

// listOf builds a list with one item per non-blank line. Every line is an
// item; strip decides what remains of its marker.
func listOf(a atom.Atom, block string, strip func(string) string) *html.Node {
	list := element(a)
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		list.AppendChild(appendAll(element(atom.Li), formatInline(strip(line))))
	}
	return list
}

func (r *Renderer) paragraph(block string) *html.Node {
	return appendAll(element(atom.P), formatLines(strings.Split(block, "\n")))
}

// formatLines formats each line and joins them with <br> elements.
func formatLines(lines []string) []*html.Node {
	var out []*html.Node
	for i, line := range lines {
		if i > 0 {
			out = append(out, element(atom.Br))
		}
		out = append(out, formatInline(line)...)
	}
	return out
}
