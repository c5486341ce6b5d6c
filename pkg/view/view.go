// Package view renders pages from html/template files.
//
// Every page under pages/ is parsed together with layout.html, so a page only
// defines the "title" and "content" blocks:
//
//	eng, err := view.New(resources.Views())
//	err = eng.Render(w, "cart", view.Data{"Cart": cart})
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
)

// Data is the value passed to a page.
type Data map[string]interface{}

// Renderer renders a named page.
type Renderer interface {
	Render(w io.Writer, name string, data interface{}) error
}

// Engine holds one parsed template set per page.
type Engine struct {
	pages map[string]*template.Template
}

// Funcs available to every template.
var Funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"lineTotal": func(price float64, qty int) string {
		return fmt.Sprintf("%.2f", price*float64(qty))
	},
}

// New parses layout.html and pages/*.html from fsys.
func New(fsys fs.FS) (*Engine, error) {
	base, err := template.New("layout.html").Funcs(Funcs).ParseFS(fsys, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse layout: %w", err)
	}

	matches, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: glob pages: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("view: no pages found")
	}

	e := &Engine{pages: make(map[string]*template.Template, len(matches))}
	for _, file := range matches {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("view: clone layout: %w", err)
		}
		if _, err := t.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", file, err)
		}
		e.pages[strings.TrimSuffix(path.Base(file), ".html")] = t
	}
	return e, nil
}

// Render executes page name into w. Output is buffered so a template error
// never leaves a half-written page.
func (e *Engine) Render(w io.Writer, name string, data interface{}) error {
	t, ok := e.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("view: render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether page name exists.
func (e *Engine) Has(name string) bool {
	_, ok := e.pages[name]
	return ok
}
