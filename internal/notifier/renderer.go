package notifier

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	texttemplate "text/template"
)

//go:embed templates/*
var embedded embed.FS

// DefaultTemplates: встроенные шаблоны писем.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer ищет пару <name>.html и <name>.txt в fsys.
type Renderer struct {
	fsys fs.FS
}

func NewRenderer(fsys fs.FS) *Renderer {
	return &Renderer{fsys: fsys}
}

func (r *Renderer) Render(name string, data any) (html, plain string, err error) {
	html, err = r.renderHTML(name, data)
	if err != nil {
		return "", "", fmt.Errorf("render html: %w", err)
	}
	plain, err = r.renderPlain(name, data)
	if err != nil {
		return "", "", fmt.Errorf("render plain: %w", err)
	}
	return html, plain, nil
}

func (r *Renderer) renderHTML(name string, data any) (string, error) {
	tmpl, err := htmltemplate.ParseFS(r.fsys, name+".html")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) renderPlain(name string, data any) (string, error) {
	tmpl, err := texttemplate.ParseFS(r.fsys, name+".txt")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
