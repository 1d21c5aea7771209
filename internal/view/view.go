// Package view turns view models into HTML. All escaping of remote and asset content
// happens here, through html/template and the markdown sanitizer.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// User visible messages.
const (
	MsgNoResults     = "Keine Treffer. Filter oder Suche anpassen."
	MsgLoadFailed    = "Daten konnten nicht geladen werden."
	MsgLoading       = "Repositories werden geladen …"
	MsgNoDescription = "Keine Beschreibung."
	MsgNoLanguage    = "—"
	MsgBlogFailed    = "Blogeinträge konnten nicht geladen werden."
	MsgNoPostsForTag = "Keine Blogposts für diesen Tag."
	MsgNoContent     = "Kein Inhalt vorhanden."
	LabelAllOrgs     = "Alle Repositories"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded stylesheet directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// DefaultDateLayout renders dates the way German locales do.
const DefaultDateLayout = "02.01.2006"

// Options controls localized and cosmetic parts of the output.
type Options struct {
	DateLayout        string
	FeaturedThreshold int
}

// Chrome is the part of every page rendered by the layout.
type Chrome struct {
	Title  string
	Active string
	Footer string
}

// Renderer renders the site pages.
type Renderer struct {
	opts     Options
	pages    map[string]*template.Template
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

var pageNames = []string{"hub", "projects", "blog"}

// NewRenderer parses the embedded templates.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.DateLayout == "" {
		opts.DateLayout = DefaultDateLayout
	}
	r := &Renderer{
		opts:     opts,
		pages:    make(map[string]*template.Template, len(pageNames)),
		markdown: goldmark.New(),
		policy:   bluemonday.UGCPolicy(),
	}
	funcs := template.FuncMap{
		"loadingText":   func() string { return MsgLoading },
		"noResultsText": func() string { return MsgNoResults },
	}
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/tiles.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout templates: %w", err)
	}
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", name, err)
		}
		page, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

// FormatDate formats t with the configured layout.
func (o Options) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	layout := o.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// FormatDate formats t with the configured layout.
func (r *Renderer) FormatDate(t time.Time) string {
	return r.opts.FormatDate(t)
}

func (r *Renderer) execute(w io.Writer, page, tmpl string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	// Render into a buffer so a template error never leaves a half written page.
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
