// Package render writes post pages and the not-found page as HTML.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/jonesrussell/north-cloud/post-resolver/internal/domain"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/meta"
	bm "github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	postTemplate     = "post.html"
	notFoundTemplate = "not_found.html"
)

// Options configures a Renderer.
type Options struct {
	Site meta.Site
	// SanitizeBody runs the post body through a UGC policy before output.
	SanitizeBody bool
}

// Renderer is safe for concurrent use.
type Renderer struct {
	tmpl   *template.Template
	site   meta.Site
	policy *bm.Policy
}

type imageView struct {
	URL string
	Alt string
}

type postView struct {
	Lang  string
	Title string
	Tags  []meta.Tag
	Image *imageView
	Body  template.HTML
}

type notFoundView struct {
	Lang     string
	SiteName string
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := &Renderer{tmpl: tmpl, site: opts.Site}
	if opts.SanitizeBody {
		r.policy = bm.UGCPolicy()
	}
	return r, nil
}

// Post writes the page for record.
func (r *Renderer) Post(w io.Writer, record *domain.ContentRecord) error {
	body := record.Content
	if r.policy != nil {
		body = r.policy.Sanitize(body)
	}

	view := postView{
		Lang:  lang(r.site.Locale),
		Title: record.Title,
		Tags:  meta.Build(record, r.site),
		Body:  template.HTML(body), //nolint:gosec // CMS-authored markup
	}
	if record.FeaturedImage != nil {
		view.Image = &imageView{URL: record.FeaturedImage.URL, Alt: meta.ImageAlt(record)}
	}

	if err := r.tmpl.ExecuteTemplate(w, postTemplate, view); err != nil {
		return fmt.Errorf("render post %s: %w", record.ID, err)
	}
	return nil
}

// NotFound writes the static not-found page.
func (r *Renderer) NotFound(w io.Writer) error {
	view := notFoundView{Lang: lang(r.site.Locale), SiteName: r.site.Name}
	if err := r.tmpl.ExecuteTemplate(w, notFoundTemplate, view); err != nil {
		return fmt.Errorf("render not found: %w", err)
	}
	return nil
}

// lang turns an Open Graph locale (en_US) into an HTML lang tag (en-US).
func lang(locale string) string {
	if locale == "" {
		return "en"
	}
	return strings.ReplaceAll(locale, "_", "-")
}
