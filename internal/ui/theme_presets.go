package ui

import "sort"

// ThemePreset is a named palette selectable with theme.preset.
type ThemePreset struct {
	Name        string
	Description string
	Config      ThemeConfig
}

// PresetThemes contains all predefined themes
var PresetThemes = map[string]ThemePreset{
	"gruvbox": {
		Name:        "gruvbox",
		Description: "Retro groove color scheme (default)",
		Config: ThemeConfig{
			Primary: "#b8bb26", Secondary: "#83a598", Success: "#b8bb26", Error: "#fb4934",
			Warning: "#fabd2f", Muted: "#928374", Text: "#ebdbb2", Spinner: "#d3869b",
		},
	},
	"dracula": {
		Name:        "dracula",
		Description: "Dark theme with purple accents",
		Config: ThemeConfig{
			Primary: "#bd93f9", Secondary: "#8be9fd", Success: "#50fa7b", Error: "#ff5555",
			Warning: "#f1fa8c", Muted: "#6272a4", Text: "#f8f8f2", Spinner: "#ff79c6",
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Arctic, north-bluish palette",
		Config: ThemeConfig{
			Primary: "#88c0d0", Secondary: "#81a1c1", Success: "#a3be8c", Error: "#bf616a",
			Warning: "#ebcb8b", Muted: "#4c566a", Text: "#eceff4", Spinner: "#b48ead",
		},
	},
	"classic": {
		Name:        "classic",
		Description: "ANSI colors for 256-color terminals",
		Config: ThemeConfig{
			Primary: "10", Secondary: "4", Success: "10", Error: "9",
			Warning: "11", Muted: "245", Text: "15", Spinner: "205",
		},
	},
}

// GetPresetTheme returns a preset by name, or nil if not found
func GetPresetTheme(name string) *ThemePreset {
	if preset, ok := PresetThemes[name]; ok {
		return &preset
	}
	return nil
}

// PresetThemeNames returns the preset names sorted alphabetically.
func PresetThemeNames() []string {
	names := make([]string, 0, len(PresetThemes))
	for name := range PresetThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
