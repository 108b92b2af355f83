package handler

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-console/internal/model"
)

// Renderer implements echo.Renderer over the embedded page templates.  Each
// page is parsed together with the layout and the partials, and rendered by
// executing "layout".
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses templates/layout.html, templates/partials/*.html and
// every templates/pages/*.html of fsys.  Times are shown in loc.
func NewRenderer(fsys fs.FS, loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := template.FuncMap{
		"datetime": func(t time.Time) string { return t.In(loc).Format("2006-01-02 15:04") },
		"clock":    func(t time.Time) string { return t.In(loc).Format("15:04") },
		"day":      func(t time.Time) string { return t.In(loc).Format("2006-01-02") },
		"seats":    func(s []model.Seat) string { return strings.Join(model.SeatLabels(s), ", ") },
		"rowLabel": model.RowLabel,
	}
	pages, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := template.New("layout").Funcs(funcs).ParseFS(fsys, "templates/layout.html", "templates/partials/*.html", p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		r.pages[strings.TrimSuffix(path.Base(p), ".html")] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
