// Package clipboard copies text to and from the system clipboard using the
// platform's command line tools.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool is installed.
var ErrUnavailable = errors.New("no clipboard utility found (install wl-clipboard or xclip)")

type tool struct {
	name string
	args []string
}

// copyTools and pasteTools are tried in order; Wayland before X11.
var (
	copyTools = map[string][]tool{
		"darwin": {{"pbcopy", nil}},
		"linux":  {{"wl-copy", nil}, {"xclip", []string{"-selection", "clipboard"}}, {"xsel", []string{"--clipboard", "--input"}}},
	}
	pasteTools = map[string][]tool{
		"darwin": {{"pbpaste", nil}},
		"linux":  {{"wl-paste", []string{"--no-newline"}}, {"xclip", []string{"-selection", "clipboard", "-o"}}, {"xsel", []string{"--clipboard", "--output"}}},
	}
	lookPath = exec.LookPath
)

// find returns the first installed tool for the current platform.
func find(tools map[string][]tool) (tool, error) {
	candidates, ok := tools[runtime.GOOS]
	if !ok {
		return tool{}, fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	for _, t := range candidates {
		if _, err := lookPath(t.name); err == nil {
			return t, nil
		}
	}
	return tool{}, ErrUnavailable
}

// CopyText copies text to the system clipboard.
func CopyText(text string) error {
	t, err := find(copyTools)
	if err != nil {
		return err
	}
	cmd := exec.Command(t.name, t.args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", t.name, err)
	}
	return nil
}

// ReadText returns the clipboard contents.
func ReadText() (string, error) {
	t, err := find(pasteTools)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	cmd := exec.Command(t.name, t.args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w", t.name, err)
	}
	return out.String(), nil
}
