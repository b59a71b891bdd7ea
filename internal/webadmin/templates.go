// ABOUTME: Template rendering functions for admin UI
// ABOUTME: Loads templates from embedded filesystem and renders them

package webadmin

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/2389/cafesite/internal/collection"
	"github.com/2389/cafesite/internal/content"
	"github.com/2389/cafesite/internal/media"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

// Template data types

// pageHeader is embedded by every page; the login page uses it alone
type pageHeader struct {
	Title     string
	SiteName  string
	Tab       string
	CSRFToken string
	Notice    string
	Error     string
}

type option struct {
	Value string
	Label string
}

type menuPageData struct {
	pageHeader
	Items      []content.MenuItem
	Editor     *collection.Editor[content.MenuItem]
	Categories []option
}

type galleryPageData struct {
	pageHeader
	Items      []content.GalleryItem
	Editor     *collection.Editor[content.GalleryItem]
	Categories []option
}

type newsPageData struct {
	pageHeader
	Posts      []content.Post
	Editor     *collection.Editor[content.Post]
	Categories []option
	Today      string
}

type aboutPageData struct {
	pageHeader
	About content.AboutPage
}

type settingsPageData struct {
	pageHeader
	Config content.SiteConfig
}

type confirmData struct {
	pageHeader
	Message   string
	Action    string
	CancelURL string
	Editing   string
}

var menuCategoryOptions = []option{
	{string(content.CategoryCoffee), "Coffee"},
	{string(content.CategoryBeverage), "Beverage"},
	{string(content.CategoryBakery), "Bakery"},
	{string(content.CategoryBrunch), "Brunch"},
}

var galleryCategoryOptions = []option{
	{string(content.GalleryInterior), "Interior"},
	{string(content.GalleryMenu), "Menu"},
}

var postCategoryOptions = []option{
	{string(content.PostNotice), "Notice"},
	{string(content.PostEvent), "Event"},
}

// imageInput drives the shared upload-or-link image partial
type imageInput struct {
	Name    string
	Label   string
	Current string
}

var printer = message.NewPrinter(language.Korean)

// editableURL hides inline payloads from URL text inputs
func editableURL(src string) string {
	if media.IsInline(src) {
		return ""
	}
	return src
}

var templateFuncs = template.FuncMap{
	"price":  func(won int) string { return printer.Sprintf("₩ %d", won) },
	"img":    media.TemplateURL,
	"urlOf":  editableURL,
	"inline": media.IsInline,
	"imageInput": func(name, label, current string) imageInput {
		return imageInput{Name: name, Label: label, Current: current}
	},
}

func (a *Admin) header(r *http.Request, title, tab, csrfToken string) pageHeader {
	return pageHeader{
		Title:     title,
		SiteName:  a.siteName,
		Tab:       tab,
		CSRFToken: csrfToken,
		Notice:    notices[r.URL.Query().Get("notice")],
	}
}

// renderLoginPage renders the login page
func (a *Admin) renderLoginPage(w http.ResponseWriter, status int, errorMsg, csrfToken string) {
	data := pageHeader{
		Title:     "Login",
		SiteName:  a.siteName,
		Error:     errorMsg,
		CSRFToken: csrfToken,
	}
	a.render(w, status, "login.html", data)
}

// render executes base.html with page into a buffer, then writes status and body
func (a *Admin) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, err := template.New("base.html").Funcs(templateFuncs).ParseFS(templateFS,
		"templates/base.html", "templates/partials/*.html", "templates/"+page)
	if err != nil {
		a.logger.Error("failed to parse template", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		a.logger.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
