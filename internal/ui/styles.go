package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Theme defines the color palette for the UI
type Theme struct {
	// Primary colors
	Primary   lipgloss.Color // main accent color (strong text, commands)
	Secondary lipgloss.Color // secondary accent (headings, borders)

	// Semantic colors
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color // emphasis, elective nodes
	Muted   lipgloss.Color // dimmed/secondary text
	Text    lipgloss.Color // primary text

	// UI element colors
	Spinner   lipgloss.Color
	Border    lipgloss.Color
	CodeBg    lipgloss.Color // background for inline and fenced code
	UserMsgBg lipgloss.Color // background for user messages in chat
}

// DefaultTheme returns the default color theme (gruvbox)
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#b8bb26"), // gruvbox green
		Secondary: lipgloss.Color("#83a598"), // gruvbox aqua
		Success:   lipgloss.Color("#b8bb26"),
		Error:     lipgloss.Color("#fb4934"),
		Warning:   lipgloss.Color("#fabd2f"),
		Muted:     lipgloss.Color("#928374"),
		Text:      lipgloss.Color("#ebdbb2"),
		Spinner:   lipgloss.Color("#d3869b"),
		Border:    lipgloss.Color("#83a598"),
		CodeBg:    lipgloss.Color("#282828"),
		UserMsgBg: lipgloss.Color("#3c3836"),
	}
}

// ThemeConfig mirrors config.ThemeConfig. Preset picks the base palette
// and the remaining fields override single colors.
type ThemeConfig struct {
	Preset    string
	Primary   string
	Secondary string
	Success   string
	Error     string
	Warning   string
	Muted     string
	Text      string
	Spinner   string
}

// ThemeFromConfig creates a theme with config overrides applied
func ThemeFromConfig(cfg ThemeConfig) *Theme {
	theme := DefaultTheme()
	if preset := GetPresetTheme(cfg.Preset); preset != nil {
		applyColors(theme, preset.Config)
	}
	applyColors(theme, cfg)
	return theme
}

func applyColors(theme *Theme, cfg ThemeConfig) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&theme.Primary, cfg.Primary)
	set(&theme.Secondary, cfg.Secondary)
	set(&theme.Border, cfg.Secondary) // border follows secondary
	set(&theme.Success, cfg.Success)
	set(&theme.Error, cfg.Error)
	set(&theme.Warning, cfg.Warning)
	set(&theme.Muted, cfg.Muted)
	set(&theme.Text, cfg.Text)
	set(&theme.Spinner, cfg.Spinner)
}

// currentTheme is the active theme instance
var currentTheme = DefaultTheme()

// GetTheme returns the current active theme
func GetTheme() *Theme {
	return currentTheme
}

// SetTheme sets the current active theme
func SetTheme(t *Theme) {
	currentTheme = t
}

// InitTheme initializes the theme from config
func InitTheme(cfg ThemeConfig) {
	SetTheme(ThemeFromConfig(cfg))
}

// Status indicators
const (
	SuccessIcon = "✓"
	FailIcon    = "✗"
	BulletIcon  = "•"
)

// Styles holds lipgloss styles bound to one output.
type Styles struct {
	renderer *lipgloss.Renderer
	theme    *Theme

	// Text styles
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Muted       lipgloss.Style
	Bold        lipgloss.Style
	Highlighted lipgloss.Style

	// Markup styles
	Heading    lipgloss.Style
	Subheading lipgloss.Style
	Strong     lipgloss.Style
	Emph       lipgloss.Style
	Code       lipgloss.Style
	CodeBlock  lipgloss.Style
	CodeLabel  lipgloss.Style
	Quote      lipgloss.Style
	Marker     lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableBorder lipgloss.Style

	// UI element styles
	Spinner lipgloss.Style
	Command lipgloss.Style
	Footer  lipgloss.Style
	UserMsg lipgloss.Style
}

// NewStyles creates styles for the given output using the current theme.
func NewStyles(output io.Writer) *Styles {
	return NewStyledWithTheme(output, currentTheme)
}

// NewStyledWithTheme creates styles with a specific theme
func NewStyledWithTheme(output io.Writer, theme *Theme) *Styles {
	r := lipgloss.NewRenderer(output)

	return &Styles{
		renderer: r,
		theme:    theme,

		Title:       r.NewStyle().Bold(true).Foreground(theme.Text),
		Subtitle:    r.NewStyle().Foreground(theme.Muted),
		Success:     r.NewStyle().Foreground(theme.Success),
		Error:       r.NewStyle().Foreground(theme.Error),
		Muted:       r.NewStyle().Foreground(theme.Muted),
		Bold:        r.NewStyle().Bold(true),
		Highlighted: r.NewStyle().Bold(true).Foreground(theme.Primary),

		Heading: r.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),
		Subheading: r.NewStyle().
			Bold(true).
			Foreground(theme.Text),
		Strong: r.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		Emph: r.NewStyle().
			Italic(true).
			Foreground(theme.Warning),
		Code: r.NewStyle().
			Foreground(theme.Primary).
			Background(theme.CodeBg),
		CodeBlock: r.NewStyle().
			Foreground(theme.Text).
			Background(theme.CodeBg).
			Padding(0, 1),
		CodeLabel: r.NewStyle().
			Foreground(theme.Muted).
			Italic(true),
		Quote: r.NewStyle().
			Foreground(theme.Muted).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			PaddingLeft(1),
		Marker: r.NewStyle().
			Foreground(theme.Secondary),

		TableHeader: r.NewStyle().
			Bold(true).
			Foreground(theme.Text),
		TableBorder: r.NewStyle().
			Foreground(theme.Border),

		Spinner: r.NewStyle().Foreground(theme.Spinner),
		Command: r.NewStyle().Bold(true).Foreground(theme.Primary),
		Footer:  r.NewStyle().Foreground(theme.Muted),
		UserMsg: r.NewStyle().Background(theme.UserMsgBg).Padding(0, 1),
	}
}

// DefaultStyles returns styles for stdout.
func DefaultStyles() *Styles {
	return NewStyles(os.Stdout)
}

// Theme returns the theme used by these styles
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Renderer returns the lipgloss renderer the styles are bound to.
func (s *Styles) Renderer() *lipgloss.Renderer {
	return s.renderer
}

// FormatResult returns a styled success/fail result
func (s *Styles) FormatResult(success bool, msg string) string {
	if success {
		return s.Success.Render(SuccessIcon+" ") + msg
	}
	return s.Error.Render(FailIcon+" ") + msg
}

// Truncate shortens s to maxWidth display cells with an ellipsis.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "...")
}

// GlamourStyleFromTheme creates a glamour StyleConfig from the given theme
func GlamourStyleFromTheme(theme *Theme) ansi.StyleConfig {
	primary := string(theme.Primary)
	secondary := string(theme.Secondary)
	warning := string(theme.Warning)
	muted := string(theme.Muted)
	text := string(theme.Text)

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockPrefix: "\n",
				BlockSuffix: "\n",
				Color:       &text,
			},
			Margin: uintPtr(2),
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:  &warning,
				Italic: boolPtr(true),
			},
			Indent: uintPtr(2),
		},
		List: ansi.StyleList{
			LevelIndent: 2,
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: &text},
			},
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockPrefix: "\n",
				Color:       &secondary,
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "# "}},
		H2: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}},
		H3: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "### "}},
		Emph: ansi.StylePrimitive{
			Color:  &warning,
			Italic: boolPtr(true),
		},
		Strong: ansi.StylePrimitive{
			Bold:  boolPtr(true),
			Color: &primary,
		},
		HorizontalRule: ansi.StylePrimitive{
			Color:  &muted,
			Format: "\n--------\n",
		},
		Item: ansi.StylePrimitive{BlockPrefix: BulletIcon + " "},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
			Color:       &secondary,
		},
		Link: ansi.StylePrimitive{
			Color:     &secondary,
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{Color: &primary},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: &primary},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: &text},
				Margin:         uintPtr(2),
			},
		},
		Table: ansi.StyleTable{
			CenterSeparator: stringPtr("┼"),
			ColumnSeparator: stringPtr("│"),
			RowSeparator:    stringPtr("─"),
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func uintPtr(u uint) *uint {
	return &u
}

func stringPtr(s string) *string {
	return &s
}
