package presentation

import "strings"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Palette holds the colors of one theme.
type Palette struct {
	Background string
	Card       string
	Row        string
	Text       string
	Muted      string
	Error      string
	Accent     string
}

var palettes = map[Theme]Palette{
	ThemeLight: {
		Background: "#ffffff",
		Card:       "#ffffff",
		Row:        "#f9fafb",
		Text:       "#111827",
		Muted:      "#6b7280",
		Error:      "#ef4444",
		Accent:     "#3b82f6",
	},
	ThemeDark: {
		Background: "#111827",
		Card:       "#1f2937",
		Row:        "#374151",
		Text:       "#ffffff",
		Muted:      "#9ca3af",
		Error:      "#f87171",
		Accent:     "#3b82f6",
	},
}

// ParseTheme prefers an explicit choice, then the Sec-CH-Prefers-Color-Scheme client
// hint, then light.
func ParseTheme(explicit, hint string) Theme {
	for _, v := range []string{explicit, hint} {
		switch Theme(strings.Trim(strings.ToLower(strings.TrimSpace(v)), `"`)) {
		case ThemeDark:
			return ThemeDark
		case ThemeLight:
			return ThemeLight
		}
	}
	return ThemeLight
}

func (t Theme) Palette() Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[ThemeLight]
}
