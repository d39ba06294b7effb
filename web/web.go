// Package web embeds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var FS embed.FS

// Templates parses every page. Each page is addressed by its file name, e.g. "login.html".
func Templates() (*template.Template, error) {
	return template.ParseFS(FS, "templates/*.html")
}
