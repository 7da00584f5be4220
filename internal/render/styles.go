package render

import (
	"strings"

	"github.com/charmbracelet/glamour/styles"
)

// Glamour style names accepted in markdown.style
const (
	StyleDark       = styles.DarkStyle
	StyleLight      = styles.LightStyle
	StyleDracula    = styles.DraculaStyle
	StyleTokyoNight = styles.TokyoNightStyle
	StylePink       = styles.PinkStyle
	StyleNoTTY      = styles.NoTTYStyle
	StyleASCII      = styles.AsciiStyle
)

// styleAliases lets TUI palette names double as markdown styles
var styleAliases = map[string]string{
	"tokyonight": StyleTokyoNight,
	"catppuccin": StyleDark,
	"nord":       StyleDark,
}

// ResolveStyle maps a configured style to what glamour understands.
// Unknown names are returned as-is and treated by glamour as a file path.
func ResolveStyle(name string) string {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)
	if alias, ok := styleAliases[lower]; ok {
		return alias
	}
	if _, ok := styles.DefaultStyles[lower]; ok {
		return lower
	}
	return name
}

// IsBuiltinStyle reports whether glamour ships the style
func IsBuiltinStyle(name string) bool {
	_, ok := styles.DefaultStyles[ResolveStyle(name)]
	return ok
}

// StyleNames lists the built-in styles for `kondate config`
func StyleNames() []string {
	return []string{StyleDark, StyleLight, StyleDracula, StyleTokyoNight, StylePink, StyleNoTTY, StyleASCII}
}
