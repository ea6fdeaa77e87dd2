package form

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/synaptica-ai/riskform/pkg/common/models"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type fieldView struct {
	FieldSpec
	Value string
	Error string
}

type pageData struct {
	UI        UIConfig
	Favicon   template.URL
	Columns   [][]fieldView
	Result    *models.PredictionResult
	Error     string
	FormError string
}

// newPageData lays the fields out in their columns with the given values. Raw posted
// strings win over parsed values so a rejected entry is shown as typed.
func newPageData(ui UIConfig, fields []FieldSpec, values map[string]float64, raw map[string]string, problems map[string]string) pageData {
	columns := make([][]fieldView, 2)
	for _, field := range fields {
		view := fieldView{FieldSpec: field, Error: problems[field.Name]}
		if v, ok := raw[field.Name]; ok {
			view.Value = v
		} else {
			view.Value = field.Format(values[field.Name])
		}
		col := field.Column - 1
		if col < 0 || col >= len(columns) {
			col = 0
		}
		columns[col] = append(columns[col], view)
	}
	return pageData{UI: ui, Favicon: favicon(ui.Icon), Columns: columns}
}

// favicon draws the configured icon as an inline SVG data URL.
func favicon(icon string) template.URL {
	if icon == "" {
		return ""
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><text y=".9em" font-size="90">` +
		template.HTMLEscapeString(icon) + `</text></svg>`
	return template.URL("data:image/svg+xml," + url.PathEscape(svg))
}

// render buffers the template so a template failure never leaves a half-written page.
func render(w http.ResponseWriter, status int, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
