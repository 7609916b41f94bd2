// Package web embeds the HTML views rendered by the handlers.
package web

import (
	"embed"         // Embedded template files
	"html/template" // HTML templates
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every view and partial
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(files, "templates/*.html")
}
