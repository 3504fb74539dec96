// Package web renders the HTML pages. Templates are embedded into the
// binary and exposed to Echo through its Renderer interface.
package web

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"
	"gopkg.in/guregu/null.v3"

	"github.com/parkonic/ticket-portal/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded template set.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates. The helper funcs unwrap the
// nullable model fields for display: null values render as empty strings.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"nullstr": func(v null.String) string { return v.ValueOrZero() },
		"nullint": func(v null.Int) string {
			if !v.Valid {
				return ""
			}
			return strconv.FormatInt(v.Int64, 10)
		},
		"isotime": model.FormatTime,
	}
	t, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
