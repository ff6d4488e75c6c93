// Package preview renders frontend chart configs into a standalone HTML page that draws
// them with lightweight-charts.
package preview

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed preview.html.tmpl
var pageSource string

var page = template.Must(template.New("preview").Parse(pageSource))

// ScriptURL is the lightweight-charts bundle loaded by the page.
const ScriptURL = "https://unpkg.com/lightweight-charts@4.2.0/dist/lightweight-charts.standalone.production.js"

type pageData struct {
	Title     string
	ScriptURL string
	Config    map[string]any
}

// Render writes the preview page for cfg, a single chart or chart manager frontend config.
func Render(w io.Writer, title string, cfg map[string]any) error {
	if _, ok := cfg["charts"]; !ok {
		return fmt.Errorf("frontend config has no charts")
	}
	if title == "" {
		title = "Chart preview"
	}
	return page.Execute(w, pageData{Title: title, ScriptURL: ScriptURL, Config: cfg})
}
