package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"confsite/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer implements domain.EmailTemplateRenderer over the embedded templates folder.
// A template named "x" is made of x_subject.txt, x.html and x.txt.
type templateRenderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewTemplateRenderer parses every embedded template up front so a broken template fails at startup.
func NewTemplateRenderer() (domain.EmailTemplateRenderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &templateRenderer{html: html, text: text}, nil
}

// Render executes the named template (e.g. "speaker_invitation") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	subject, err = r.renderText(templateName+"_subject.txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = r.renderHTML(templateName+".html", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = r.renderText(templateName+".txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *templateRenderer) renderHTML(name string, data any) (string, error) {
	t := r.html.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *templateRenderer) renderText(name string, data any) (string, error) {
	t := r.text.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
