// Package templates embeds the HTML pages served by the web layer.
package templates

import (
	"embed"
	"html/template"
)

//go:embed index.html
var files embed.FS

// Index is the upload form page. It renders the error message or the
// download link for the generated report when present.
var Index = template.Must(template.ParseFS(files, "index.html"))
