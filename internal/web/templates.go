package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/diogo/kondate/internal/recipe"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"splitList": splitList}).
		ParseFS(templateFS, "templates/index.html"),
)

// splitList breaks the submitted ingredient line back into its items
func splitList(list string) []string {
	return strings.Split(list, recipe.ListSeparator)
}
