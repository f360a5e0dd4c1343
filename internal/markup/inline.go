package markup

import (
	"regexp"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type span struct {
	re *regexp.Regexp
	a  atom.Atom
}

var codeSpan = regexp.MustCompile("`([^`]+)`")

// spans are applied in order. Each pass rewrites the text nodes left by
// the previous passes, including text already inside a span element.
// Asterisks inside a code span never delimit bold or italic.
var spans = []span{
	{regexp.MustCompile(`\*\*(.*?)\*\*`), atom.Strong},
	{regexp.MustCompile(`\*(.+?)\*`), atom.Em},
	{codeSpan, atom.Code},
}

// formatInline converts bold, italic and code markers in a single line to
// elements. Everything else stays in text nodes.
func formatInline(s string) []*html.Node {
	if s == "" {
		return nil
	}
	nodes := []*html.Node{textNode(s)}
	for _, sp := range spans {
		nodes = substitute(nodes, sp)
	}
	return nodes
}

func substitute(nodes []*html.Node, sp span) []*html.Node {
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Type != html.TextNode {
			appendAll(n, substitute(detach(n), sp))
			out = append(out, n)
			continue
		}
		out = append(out, split(n.Data, sp)...)
	}
	return out
}

func split(s string, sp span) []*html.Node {
	subject := s
	if sp.a != atom.Code {
		subject = maskCode(s)
	}
	matches := sp.re.FindAllStringSubmatchIndex(subject, -1)
	if matches == nil {
		return []*html.Node{textNode(s)}
	}
	var out []*html.Node
	last := 0
	for _, m := range matches {
		if m[0] > last {
			out = append(out, textNode(s[last:m[0]]))
		}
		el := element(sp.a)
		if m[3] > m[2] {
			el.AppendChild(textNode(s[m[2]:m[3]]))
		}
		out = append(out, el)
		last = m[1]
	}
	if last < len(s) {
		out = append(out, textNode(s[last:]))
	}
	return out
}

func detach(n *html.Node) []*html.Node {
	var kids []*html.Node
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		kids = append(kids, c)
		c = next
	}
	return kids
}

// maskCode blanks the asterisks inside code spans. The result has the same
// byte offsets as s.
func maskCode(s string) string {
	locs := codeSpan.FindAllStringIndex(s, -1)
	if locs == nil {
		return s
	}
	b := []byte(s)
	for _, loc := range locs {
		for i := loc[0]; i < loc[1]; i++ {
			if b[i] == '*' {
				b[i] = 0
			}
		}
	}
	return string(b)
}
