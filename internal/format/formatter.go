// Package format renders query results for the terminal and for scripts.
package format

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/aidanlsb/winereview/internal/model"
)

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

var funcs = template.FuncMap{
	"price": model.FormatPrice,
}

// Formatter renders one record at a time through a per-kind text template.
type Formatter struct {
	templates map[model.Kind]*template.Template
}

// reviewData is what review.tmpl sees: the review plus its wine and reviewer
// portions already rendered through their own templates.
type reviewData struct {
	model.Review
	ResultWine     string
	ResultReviewer string
}

// NewFormatter loads <kind>.tmpl for every kind. A file in dir replaces the
// built-in template of the same name; an empty dir uses only built-ins.
func NewFormatter(dir string) (*Formatter, error) {
	f := &Formatter{templates: make(map[model.Kind]*template.Template, len(model.Kinds))}
	for _, kind := range model.Kinds {
		name := string(kind) + ".tmpl"
		text, err := readTemplate(dir, name)
		if err != nil {
			return nil, err
		}
		tmpl, err := template.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		f.templates[kind] = tmpl
	}
	return f, nil
}

func readTemplate(dir, name string) (string, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read template %s: %w", name, err)
		}
	}
	data, err := builtinTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("built-in template %s: %w", name, err)
	}
	return string(data), nil
}

// Format renders r with surrounding whitespace trimmed.
func (f *Formatter) Format(r model.Record) (string, error) {
	switch rec := r.(type) {
	case model.Wine:
		return f.execute(model.KindWine, rec)
	case model.Reviewer:
		return f.execute(model.KindReviewer, rec)
	case model.Review:
		wine, err := f.execute(model.KindWine, rec.Wine)
		if err != nil {
			return "", err
		}
		reviewer, err := f.execute(model.KindReviewer, rec.Reviewer)
		if err != nil {
			return "", err
		}
		return f.execute(model.KindReview, reviewData{
			Review:         rec,
			ResultWine:     wine,
			ResultReviewer: reviewer,
		})
	default:
		return "", fmt.Errorf("no template for record %T", r)
	}
}

func (f *Formatter) execute(kind model.Kind, data any) (string, error) {
	var sb strings.Builder
	if err := f.templates[kind].Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s: %w", kind, err)
	}
	return strings.TrimSpace(sb.String()), nil
}
