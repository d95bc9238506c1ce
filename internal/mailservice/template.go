package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*
var templateFS embed.FS

// templateCache keeps each parsed email template; every file defines the same
// subject, plainBody and htmlBody blocks so they cannot share one set.
var templateCache sync.Map

func NewTemplate() *Template {
	return &Template{}
}

func lookupTemplate(name string) (*template.Template, error) {
	if t, ok := templateCache.Load(name); ok {
		return t.(*template.Template), nil
	}

	t, err := template.New("email").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("could not parse template: %w", err)
	}

	actual, _ := templateCache.LoadOrStore(name, t)
	return actual.(*template.Template), nil
}

// ParseTemplate renders the subject, plain text and HTML bodies of the named email template with data.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, err := lookupTemplate(name)
	if err != nil {
		return nil, nil, nil, err
	}

	parts := make([]*bytes.Buffer, 3)
	for i, block := range []string{"subject", "plainBody", "htmlBody"} {
		parts[i] = new(bytes.Buffer)
		if err := t.ExecuteTemplate(parts[i], block, data); err != nil {
			return nil, nil, nil, fmt.Errorf("could not render %s: %w", block, err)
		}
	}

	return parts[0], parts[1], parts[2], nil
}
