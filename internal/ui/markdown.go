package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type reportKey struct {
	width int
	theme *Theme
}

var (
	reportMu        sync.Mutex
	reportRenderers = map[reportKey]*glamour.TermRenderer{}
)

// reportRenderer returns the glamour renderer for the active theme at the
// given wrap width. Renderers built for an earlier theme are dropped.
func reportRenderer(width int) (*glamour.TermRenderer, error) {
	key := reportKey{width: width, theme: GetTheme()}

	reportMu.Lock()
	defer reportMu.Unlock()
	if r, ok := reportRenderers[key]; ok {
		return r, nil
	}

	style := GlamourStyleFromTheme(key.theme)
	margin := uint(0)
	style.Document.Margin = &margin
	style.Document.BlockPrefix = ""
	style.Document.BlockSuffix = ""
	style.CodeBlock.Margin = &margin

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	for k := range reportRenderers {
		if k.theme != key.theme {
			delete(reportRenderers, k)
		}
	}
	reportRenderers[key] = r
	return r, nil
}

// RenderMarkdown renders a full markdown document, such as an advisor
// report, with glamour. On error the content is returned unchanged.
func RenderMarkdown(content string, width int) string {
	if content == "" {
		return ""
	}
	r, err := reportRenderer(width)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(out)
}
