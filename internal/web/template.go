package web

import (
	"bytes"
	"fmt"
	stdtemplate "html/template"
	"io/fs"
	"net/http"
	"net/url"
)

// Template renders the embedded page templates
type Template struct {
	templates *stdtemplate.Template
}

// NewTemplate parses every page under templates/ in fsys
func NewTemplate(fsys fs.FS) (*Template, error) {
	funcMap := stdtemplate.FuncMap{
		"companyURL": CompanyURL,
		"searchURL":  WebSearchURL,
	}

	t, err := stdtemplate.New("pages").Funcs(funcMap).ParseFS(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Template{templates: t}, nil
}

// Render executes the named template and writes it with status.
// Nothing is written when execution fails.
func (t *Template) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := t.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// CompanyURL is the page path for a company name
func CompanyURL(name string) string {
	return "/company/" + url.PathEscape(name)
}

// WebSearchURL is an external web search for a company the app has no record of
func WebSearchURL(name string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(name+" company information")
}
