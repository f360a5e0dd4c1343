package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"testing"
)

func withLookPath(t *testing.T, installed ...string) {
	t.Helper()
	have := make(map[string]bool, len(installed))
	for _, name := range installed {
		have[name] = true
	}
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if have[name] {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestFindPrefersFirstInstalled(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("tool order is checked on linux")
	}
	withLookPath(t, "xclip", "xsel")
	got, err := find(copyTools)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.name != "xclip" {
		t.Errorf("find = %q, want xclip", got.name)
	}

	withLookPath(t, "wl-paste", "xclip")
	got, err = find(pasteTools)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.name != "wl-paste" || got.args[0] != "--no-newline" {
		t.Errorf("find = %+v, want wl-paste --no-newline", got)
	}
}

func TestFindNoTools(t *testing.T) {
	if _, ok := copyTools[runtime.GOOS]; !ok {
		t.Skip("platform has no clipboard tools")
	}
	withLookPath(t)
	if _, err := find(copyTools); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if err := CopyText("x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("CopyText err = %v, want ErrUnavailable", err)
	}
}
