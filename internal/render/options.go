// Package render turns model replies into terminal and HTML output and holds
// the TUI colour palettes.
package render

import (
	"os"

	"github.com/diogo/kondate/internal/config"
)

// StyleEnvVar overrides the configured glamour style when set
const StyleEnvVar = "GLAMOUR_STYLE"

// minWidth keeps glamour from wrapping every word on tiny terminals
const minWidth = 20

// Options configures the terminal markdown renderer.
type Options struct {
	// Width is the word-wrap column
	Width int

	// Style is a glamour style name (see StyleNames) or a path to a JSON style
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return FromConfig(config.DefaultMarkdownConfig())
}

// FromConfig builds Options from the markdown section of the config file.
// GLAMOUR_STYLE takes precedence over the configured style.
func FromConfig(md config.MarkdownConfig) Options {
	opts := Options{
		Width:            80,
		Style:            md.Style,
		EnableEmoji:      md.EnableEmoji,
		PreserveNewLines: md.PreserveNewLines,
		TableWrap:        md.TableWrap,
		InlineTableLinks: md.InlineTableLinks,
	}
	if style := os.Getenv(StyleEnvVar); style != "" {
		opts.Style = style
	}
	if opts.Style == "" {
		opts.Style = StyleDark
	}
	return opts
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	if width < minWidth {
		width = minWidth
	}
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
