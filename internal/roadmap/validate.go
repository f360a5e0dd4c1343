package roadmap

import (
	"errors"
	"fmt"
	"strings"
)

// Normalize repairs model output in place: unknown node types become
// core, and missing or duplicate IDs are replaced with fresh ones.
// It returns the number of nodes changed.
func Normalize(r *Roadmap) int {
	if r == nil || r.Root == nil {
		return 0
	}
	seen := make(map[int]bool)
	next := 0
	Walk(r.Root, func(n *Node, _ int) bool {
		next = max(next, n.ID)
		return true
	})

	var changed int
	Walk(r.Root, func(n *Node, _ int) bool {
		dirty := false
		if t := NodeType(strings.ToLower(strings.TrimSpace(string(n.Type)))); t.Valid() {
			dirty = t != n.Type
			n.Type = t
		} else {
			n.Type = Core
			dirty = true
		}
		if n.ID <= 0 || seen[n.ID] {
			next++
			n.ID = next
			dirty = true
		}
		seen[n.ID] = true
		if dirty {
			changed++
		}
		return true
	})
	return changed
}

// Validate reports structural problems that Normalize cannot repair.
func Validate(r *Roadmap) error {
	if r == nil {
		return errors.New("roadmap is nil")
	}
	var errs []error
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, errors.New("roadmap title is empty"))
	}
	if r.Root == nil {
		errs = append(errs, errors.New("roadmap has no root node"))
		return errors.Join(errs...)
	}

	ids := make(map[int]bool)
	Walk(r.Root, func(n *Node, depth int) bool {
		if strings.TrimSpace(n.Title) == "" {
			errs = append(errs, fmt.Errorf("node %d at depth %d has no title", n.ID, depth))
		}
		if !n.Type.Valid() {
			errs = append(errs, fmt.Errorf("node %d has unknown type %q", n.ID, n.Type))
		}
		if ids[n.ID] {
			errs = append(errs, fmt.Errorf("duplicate node id %d", n.ID))
		}
		ids[n.ID] = true
		return true
	})
	return errors.Join(errs...)
}
