package ui

import (
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/skillpath/skillpath/internal/roadmap"
)

// Badge renders a node type tag such as "[core]".
func (s *Styles) Badge(t roadmap.NodeType) string {
	color := s.theme.Secondary
	switch t {
	case roadmap.Elective:
		color = s.theme.Warning
	case roadmap.Tool:
		color = s.theme.Primary
	}
	return s.renderer.NewStyle().Foreground(color).Render("[" + string(t) + "]")
}

// RoadmapTree draws r as an indented tree with a badge per node. With
// details set, node descriptions are shown under their titles.
func (s *Styles) RoadmapTree(r *roadmap.Roadmap, details bool) string {
	header := s.Title.Render(r.Title)
	if r.Description != "" {
		header += "\n" + s.Subtitle.Render(r.Description)
	}
	if r.Root == nil {
		return header
	}
	t := s.nodeTree(r.Root, details).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(s.TableBorder.PaddingRight(1))
	return header + "\n\n" + t.String()
}

func (s *Styles) nodeTree(n *roadmap.Node, details bool) *tree.Tree {
	t := tree.Root(s.nodeLabel(n, details))
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(s.nodeLabel(c, details))
			continue
		}
		t.Child(s.nodeTree(c, details))
	}
	return t
}

func (s *Styles) nodeLabel(n *roadmap.Node, details bool) string {
	label := s.Bold.Render(n.Title) + " " + s.Badge(n.Type)
	if details && n.Description != "" {
		label += "\n" + s.Muted.Render(n.Description)
	}
	return label
}
