package roadmap

import "errors"

var (
	ErrNotFound   = errors.New("roadmap not found")
	ErrEmptyTopic = errors.New("topic is required")
)

// NodeType classifies a roadmap node.
type NodeType string

const (
	Core     NodeType = "core"     // fundamental concepts
	Elective NodeType = "elective" // optional topics or alternative paths
	Tool     NodeType = "tool"     // software, libraries or frameworks
)

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	switch t {
	case Core, Elective, Tool:
		return true
	}
	return false
}

// Node is one topic in a roadmap tree.
type Node struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Type        NodeType `json:"type" yaml:"type"`
	Children    []*Node  `json:"children" yaml:"children,omitempty"`
}

// Roadmap is a titled tree of topics.
type Roadmap struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Root        *Node  `json:"root" yaml:"root"`
}
