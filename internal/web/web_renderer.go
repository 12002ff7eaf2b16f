package web

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"
)

// TemplateRenderer turns a template name into a response body
type TemplateRenderer interface {
	Render(name string) ([]byte, error)
}

// FileRenderer parses templates from Dir on every call, so edits on disk
// show up with the next request. text/template keeps comments intact;
// no data is passed, so there is nothing to escape.
type FileRenderer struct {
	Dir string
}

// NewFileRenderer returns a renderer reading templates from dir
func NewFileRenderer(dir string) *FileRenderer {
	return &FileRenderer{Dir: dir}
}

// Render parses and executes the named template without data.
// A missing file returns an error matching fs.ErrNotExist.
func (r *FileRenderer) Render(name string) ([]byte, error) {
	if !filepath.IsLocal(name) {
		return nil, fmt.Errorf("render %s: template name escapes template dir", name)
	}

	tmpl, err := template.ParseFiles(filepath.Join(r.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
