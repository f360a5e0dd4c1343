package roadmap

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed data/premade.yaml
var premadeYAML []byte

var loadPremade = sync.OnceValues(func() ([]*Roadmap, error) {
	var doc struct {
		Roadmaps []*Roadmap `yaml:"roadmaps"`
	}
	if err := yaml.Unmarshal(premadeYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse premade roadmaps: %w", err)
	}
	for _, r := range doc.Roadmaps {
		if err := Validate(r); err != nil {
			return nil, fmt.Errorf("premade roadmap %q: %w", r.Title, err)
		}
	}
	return doc.Roadmaps, nil
})

// Premade returns copies of the built-in roadmaps.
func Premade() []*Roadmap {
	list, err := loadPremade()
	if err != nil {
		// The embedded file is validated by tests.
		panic(err)
	}
	out := make([]*Roadmap, len(list))
	for i, r := range list {
		out[i] = r.Clone()
	}
	return out
}

// Titles returns the titles of the built-in roadmaps in order.
func Titles() []string {
	list := Premade()
	titles := make([]string, len(list))
	for i, r := range list {
		titles[i] = r.Title
	}
	return titles
}

// Find looks up a built-in roadmap by title. An exact case-insensitive
// match wins; otherwise the best fuzzy match is returned.
func Find(title string) (*Roadmap, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrNotFound
	}
	list := Premade()
	for _, r := range list {
		if strings.EqualFold(r.Title, title) {
			return r, nil
		}
	}

	titles := make([]string, len(list))
	for i, r := range list {
		titles[i] = strings.ToLower(r.Title)
	}
	matches := fuzzy.Find(strings.ToLower(title), titles)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	return list[matches[0].Index], nil
}
