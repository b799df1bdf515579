package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var albumTemplate = template.Must(template.ParseFS(templateFS, "templates/album.html.tmpl"))
