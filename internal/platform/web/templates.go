// Package web holds the server-rendered pages of the web front-end.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are available to every page.
var Funcs = template.FuncMap{
	"fmtTime": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04 UTC")
	},
	"lower": func(s string) string {
		switch s {
		case "Bullish":
			return "bullish"
		case "Bearish":
			return "bearish"
		}
		return "neutral"
	},
}

// Templates parses every embedded page. Pages are addressed by file name, e.g.
// c.HTML(http.StatusOK, "login.html", data).
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html")
}

// MustTemplates panics when the embedded pages do not parse.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
