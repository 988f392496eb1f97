package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"pet-console/internal/platform/logger"
	"pet-console/internal/screens"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageList     = "list"
	pageCreate   = "create"
	pageSearch   = "search"
	pageDetail   = "detail"
	pageNotFound = "notfound"
)

// Renderer tiene un set de templates por página (layout + contenido).
type Renderer struct {
	title string
	pages map[string]*template.Template
	log   logger.Logger
}

func NewRenderer(title string, log logger.Logger) (*Renderer, error) {
	if log == nil {
		log = logger.Nop()
	}
	funcs := template.FuncMap{
		"isError": screens.IsError,
	}

	r := &Renderer{
		title: title,
		pages: make(map[string]*template.Template),
		log:   log,
	}
	for _, name := range []string{pageList, pageCreate, pageSearch, pageDetail, pageNotFound} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// render ejecuta primero en buffer para no mandar HTML a medias.
func (r *Renderer) render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.pages[name]
	if !ok {
		r.log.Error("unknown page", map[string]any{"page": name})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.log.Error("render failed", map[string]any{"page": name, "err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Static sirve los assets embebidos bajo /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
