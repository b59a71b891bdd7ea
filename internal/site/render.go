// ABOUTME: Template loading and rendering helpers for the public site
// ABOUTME: Provides price formatting, Markdown post bodies, and lightbox view models

package site

import (
	"bytes"
	"embed"
	"html/template"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/2389/cafesite/internal/carousel"
	"github.com/2389/cafesite/internal/media"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// pageData is embedded by every page's template data.
type pageData struct {
	Title        string
	SiteName     string
	Active       string
	ScrollLocked bool
}

func (s *Site) page(title, active string, flag *carousel.ScrollFlag) pageData {
	return pageData{
		Title:        title,
		SiteName:     s.config.Name,
		Active:       active,
		ScrollLocked: flag != nil && flag.Locked(),
	}
}

type renderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
	printer  *message.Printer
}

func newRenderer() *renderer {
	return &renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy:  bluemonday.UGCPolicy(),
		printer: message.NewPrinter(language.Korean),
	}
}

// price formats a won amount with digit grouping, e.g. "₩ 4,500".
func (r *renderer) price(won int) string {
	return r.printer.Sprintf("₩ %d", won)
}

// markdown renders a post body to sanitized HTML.
func (r *renderer) renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// excerpt returns the first n runes of a post body as plain text.
func excerpt(src string, n int) string {
	src = strings.Join(strings.Fields(src), " ")
	runes := []rune(src)
	if len(runes) <= n {
		return src
	}
	return string(runes[:n]) + "…"
}

func (r *renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"price":    r.price,
		"markdown": r.renderMarkdown,
		"excerpt":  excerpt,
		"img":      media.TemplateURL,
		"keys":     keyBindingsAttr,
	}
}

func (s *Site) render(w http.ResponseWriter, page string, data any) {
	s.renderStatus(w, http.StatusOK, page, data)
}

func (s *Site) renderStatus(w http.ResponseWriter, status int, page string, data any) {
	tmpl, err := template.New("base.html").Funcs(s.renderer.funcs()).ParseFS(templateFS,
		"templates/base.html", "templates/partials/*.html", "templates/"+page)
	if err != nil {
		s.logger.Error("failed to parse template", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// slide is one item shown inside a lightbox.
type slide struct {
	ImageURL    string
	Title       string
	Subtitle    string
	Description string
	Badge       string
	Price       string
	Signature   bool
}

// lightbox is the template model for the shared lightbox partial.
type lightbox struct {
	Open     bool
	Slide    slide
	Position int
	Count    int
	PrevURL  string
	NextURL  string
	CloseURL string
}

func newLightbox(c *carousel.Controller, link func(view int) string, at func(i int) slide) lightbox {
	v := c.View()
	if !v.Open {
		return lightbox{Count: v.Count}
	}
	return lightbox{
		Open:     true,
		Slide:    at(v.Index),
		Position: v.Position,
		Count:    v.Count,
		PrevURL:  link(v.Prev),
		NextURL:  link(v.Next),
		CloseURL: link(-1),
	}
}

// restoreCarousel rebuilds a surface's carousel from the request query. The
// lightbox script forwards input as ?key= (a bound key) or ?backdrop=1; that
// input is applied here and moved reports that the caller should redirect to
// the link for the resulting state.
func restoreCarousel(r *http.Request, n int, flag *carousel.ScrollFlag) (ctl *carousel.Controller, moved bool) {
	q := r.URL.Query()
	ctl = carousel.Restore(n, q.Get("view"), carousel.WithScrollLocker(flag))
	switch {
	case q.Has("key"):
		ctl.HandleKey(q.Get("key"))
		return ctl, true
	case q.Has("backdrop"):
		ctl.HandleBackdrop(q.Get("backdrop") == "1")
		return ctl, true
	}
	return ctl, false
}

// currentView is the index to link to for ctl's state; -1 when closed.
func currentView(ctl *carousel.Controller) int {
	if i, ok := ctl.Index(); ok {
		return i
	}
	return -1
}

// keyBindingsAttr renders the carousel key table as "key:action" pairs for the
// lightbox script.
func keyBindingsAttr() string {
	pairs := make([]string, 0, len(carousel.KeyBindings))
	for _, key := range slices.Sorted(maps.Keys(carousel.KeyBindings)) {
		pairs = append(pairs, key+":"+string(carousel.KeyBindings[key]))
	}
	return strings.Join(pairs, " ")
}

// viewURL links to path with the lightbox open at view; a negative view closes it.
func viewURL(path string, view int, fragment string) string {
	u := url.URL{Path: path, Fragment: fragment}
	if view >= 0 {
		u.RawQuery = url.Values{"view": {strconv.Itoa(view)}}.Encode()
	}
	return u.String()
}

func menuURL(category string, view int) string {
	q := url.Values{}
	if category != "" && category != "all" {
		q.Set("category", category)
	}
	if view >= 0 {
		q.Set("view", strconv.Itoa(view))
	}
	u := url.URL{Path: "/menu", RawQuery: q.Encode()}
	return u.String()
}
