// Package templates embeds the HTML views served by the page controller.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var FS embed.FS

// Parse loads every page template.
func Parse() (*template.Template, error) {
	return template.New("").ParseFS(FS, "*.html")
}
