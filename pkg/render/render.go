// Package render executes html/template pages that share one layout.
//
// Templates are read from an fs.FS with this layout:
//
//	layout/*.html   shared blocks, parsed into every page
//	pages/*.html    one file per page, each defining "content"
//
//	r, err := render.New(views.FS, funcs)
//	r.HTML(w, http.StatusOK, "home", data)
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/shashiranjanraj/megamart/pkg/logger"
)

// entry is the template every page executes.
const entry = "layout"

type Renderer struct {
	pages map[string]*template.Template
}

func New(fsys fs.FS, funcs template.FuncMap) (*Renderer, error) {
	base, err := template.New(entry).Funcs(funcs).ParseFS(fsys, "layout/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse layout: %w", err)
	}

	files, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: list pages: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")

		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("render: clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", file, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Has reports whether a page called name was loaded.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Execute renders page into a buffer.
func (r *Renderer) Execute(page string, data any) ([]byte, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("render: unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, entry, data); err != nil {
		return nil, fmt.Errorf("render: execute %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

// HTML renders page fully before writing, so a template error still yields a
// clean 500.
func (r *Renderer) HTML(w http.ResponseWriter, req *http.Request, status int, page string, data any) {
	body, err := r.Execute(page, data)
	if err != nil {
		logger.WithCtx(req.Context()).Error("render failed", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck
}
