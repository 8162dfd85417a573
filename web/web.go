package web

import (
	"embed"
	"html/template"
)

//go:embed template/*.html
var templateFiles embed.FS

// Templates parses the embedded page templates with funcs.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFiles, "template/*.html")
}
