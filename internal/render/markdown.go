package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown renders markdown for the terminal with a pooled glamour renderer.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	out, err := renderer.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// MarkdownWithWidth renders with default options at the given width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

// Raw HTML inside replies is escaped: goldmark's unsafe mode stays off.
var htmlRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// MarkdownHTML renders markdown to an HTML fragment for the web page.
func MarkdownHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
