// Package document assembles laid-out subplots into a standalone HTML page.
package document

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/ARU-life-sciences/gffplot/internal/annotation"
	"github.com/ARU-life-sciences/gffplot/internal/plot"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// marker is one arrowhead definition.
type marker struct {
	ID    string
	Color string
}

// page is the data handed to the template. Body is trusted SVG markup.
type page struct {
	Title   string
	Width   int
	Height  int
	Markers []marker
	Body    string
}

// Render returns the complete HTML document for d.
func Render(d *plot.Diagram, cfg plot.Config) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout config: %w", err)
	}

	p := page{
		Title:  cfg.Title,
		Width:  d.Width,
		Height: d.Height,
		Body:   d.Markup(),
	}
	for _, s := range annotation.Sources() {
		p.Markers = append(p.Markers, marker{ID: s.MarkerID(), Color: cfg.Color(s)})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders the document and writes it to w in a single call, so a
// rendering failure never leaves a partial document behind.
func Write(w io.Writer, d *plot.Diagram, cfg plot.Config) error {
	doc, err := Render(d, cfg)
	if err != nil {
		return err
	}
	if _, err := w.Write(doc); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
