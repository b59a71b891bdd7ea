// ABOUTME: Public cafe website: home, menu, gallery, about, and news pages
// ABOUTME: Every page reads the content store on request and renders embedded templates

package site

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/2389/cafesite/internal/carousel"
	"github.com/2389/cafesite/internal/collection"
	"github.com/2389/cafesite/internal/content"
	"github.com/2389/cafesite/internal/store"
)

// SignatureCount is how many signature items the home page features.
const SignatureCount = 3

// Config holds public site settings
type Config struct {
	// Name is shown in the navigation bar, footer, and page titles
	Name string
}

// Site serves the public pages.
type Site struct {
	store    *store.ContentStore
	config   Config
	renderer *renderer
	logger   *slog.Logger
}

// New creates the public site over cs.
func New(cs *store.ContentStore, cfg Config) *Site {
	if cfg.Name == "" {
		cfg.Name = "Cafe"
	}
	return &Site{
		store:    cs,
		config:   cfg,
		renderer: newRenderer(),
		logger:   slog.Default().With("component", "site"),
	}
}

// RegisterRoutes mounts the public pages on r.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleHome)
	r.Get("/menu", s.handleMenu)
	r.Get("/gallery", s.handleGallery)
	r.Get("/about", s.handleAbout)
	r.Get("/news", s.handleNews)
	r.Get("/news/{id}", s.handlePost)
	r.Get("/static/*", s.handleStatic)
}

type homeData struct {
	pageData
	Config     content.SiteConfig
	Signatures []content.MenuItem
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg, err := s.store.SiteConfig(ctx)
	if err != nil {
		s.serverError(w, "loading site config", err)
		return
	}
	menu, err := s.store.Menu(ctx)
	if err != nil {
		s.serverError(w, "loading menu", err)
		return
	}

	s.render(w, "home.html", homeData{
		pageData:   s.page("Home", "home", nil),
		Config:     cfg,
		Signatures: collection.Signature(menu, SignatureCount),
	})
}

type categoryTab struct {
	Value  string
	Label  string
	URL    string
	Active bool
}

type menuData struct {
	pageData
	Tabs     []categoryTab
	Category string
	Items    []menuCard
	Lightbox lightbox
}

type menuCard struct {
	content.MenuItem
	ViewURL string
}

var menuTabLabels = map[string]string{
	collection.CategoryAll:           "All Menu",
	string(content.CategoryCoffee):   "Specialty Coffee",
	string(content.CategoryBeverage): "Coffee & Beverage",
	string(content.CategoryBakery):   "Master Bakery",
	string(content.CategoryBrunch):   "Brunch & Meal",
}

// menuCategory normalizes the category query parameter; unknown values mean all.
func menuCategory(raw string) string {
	if _, err := content.ParseMenuCategory(raw); err == nil {
		return raw
	}
	return collection.CategoryAll
}

func (s *Site) handleMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := s.store.Menu(r.Context())
	if err != nil {
		s.serverError(w, "loading menu", err)
		return
	}

	category := menuCategory(r.URL.Query().Get("category"))
	items := collection.FilterMenu(menu, category)

	link := func(view int) string { return menuURL(category, view) }
	flag := &carousel.ScrollFlag{}
	ctl, moved := restoreCarousel(r, len(items), flag)
	if moved {
		http.Redirect(w, r, link(currentView(ctl)), http.StatusSeeOther)
		return
	}

	tabs := []categoryTab{{Value: collection.CategoryAll}}
	for _, c := range content.MenuCategories {
		tabs = append(tabs, categoryTab{Value: string(c)})
	}
	for i := range tabs {
		tabs[i].Label = menuTabLabels[tabs[i].Value]
		// Switching category always lands with the detail browser closed
		tabs[i].URL = menuURL(tabs[i].Value, -1)
		tabs[i].Active = tabs[i].Value == category
	}

	cards := make([]menuCard, len(items))
	for i, item := range items {
		cards[i] = menuCard{MenuItem: item, ViewURL: link(i)}
	}

	s.render(w, "menu.html", menuData{
		pageData: s.page("Menu", "menu", flag),
		Tabs:     tabs,
		Category: category,
		Items:    cards,
		Lightbox: newLightbox(ctl, link, func(i int) slide {
			item := items[i]
			return slide{
				ImageURL:    item.ImageURL,
				Title:       item.Name,
				Subtitle:    item.NameEng,
				Description: item.Description,
				Badge:       menuTabLabels[string(item.Category)],
				Signature:   item.IsSignature,
				Price:       s.renderer.price(item.Price),
			}
		}),
	})
}

type galleryData struct {
	pageData
	Items    []galleryCard
	Lightbox lightbox
}

type galleryCard struct {
	content.GalleryItem
	ViewURL string
}

func (s *Site) handleGallery(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.Gallery(r.Context())
	if err != nil {
		s.serverError(w, "loading gallery", err)
		return
	}

	link := func(view int) string { return viewURL("/gallery", view, "") }
	flag := &carousel.ScrollFlag{}
	ctl, moved := restoreCarousel(r, len(items), flag)
	if moved {
		http.Redirect(w, r, link(currentView(ctl)), http.StatusSeeOther)
		return
	}

	cards := make([]galleryCard, len(items))
	for i, item := range items {
		cards[i] = galleryCard{GalleryItem: item, ViewURL: link(i)}
	}

	s.render(w, "gallery.html", galleryData{
		pageData: s.page("Gallery", "gallery", flag),
		Items:    cards,
		Lightbox: newLightbox(ctl, link, func(i int) slide {
			return slide{ImageURL: items[i].ImageURL, Title: items[i].Title, Badge: string(items[i].Category)}
		}),
	})
}

type aboutData struct {
	pageData
	About    content.AboutPage
	Images   []aboutCard
	Lightbox lightbox
}

type aboutCard struct {
	content.AboutImage
	ViewURL string
}

func (s *Site) handleAbout(w http.ResponseWriter, r *http.Request) {
	about, err := s.store.AboutPage(r.Context())
	if err != nil {
		s.serverError(w, "loading about page", err)
		return
	}

	images := about.Gallery.Images
	link := func(view int) string { return viewURL("/about", view, "gallery") }
	flag := &carousel.ScrollFlag{}
	ctl, moved := restoreCarousel(r, len(images), flag)
	if moved {
		http.Redirect(w, r, link(currentView(ctl)), http.StatusSeeOther)
		return
	}

	cards := make([]aboutCard, len(images))
	for i, img := range images {
		cards[i] = aboutCard{AboutImage: img, ViewURL: link(i)}
	}

	s.render(w, "about.html", aboutData{
		pageData: s.page("About", "about", flag),
		About:    about,
		Images:   cards,
		Lightbox: newLightbox(ctl, link, func(i int) slide {
			return slide{ImageURL: images[i].URL, Title: images[i].Caption}
		}),
	})
}

type newsData struct {
	pageData
	Tabs  []categoryTab
	Posts []content.Post
}

var newsTabLabels = map[string]string{
	collection.CategoryAll:     "All",
	string(content.PostNotice): "Notice",
	string(content.PostEvent):  "Event",
}

func (s *Site) handleNews(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if _, err := content.ParsePostCategory(category); err != nil {
		category = collection.CategoryAll
	}

	posts, err := s.store.Posts(r.Context())
	if err != nil {
		s.serverError(w, "loading posts", err)
		return
	}
	posts = collection.FilterPosts(collection.SortPostsPublic(posts), category)

	var tabs []categoryTab
	for _, v := range []string{collection.CategoryAll, string(content.PostNotice), string(content.PostEvent)} {
		u := "/news"
		if v != collection.CategoryAll {
			u += "?category=" + v
		}
		tabs = append(tabs, categoryTab{Value: v, Label: newsTabLabels[v], URL: u, Active: v == category})
	}

	s.render(w, "news.html", newsData{
		pageData: s.page("News", "news", nil),
		Tabs:     tabs,
		Posts:    posts,
	})
}

type postData struct {
	pageData
	Post content.Post
}

func (s *Site) handlePost(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.Posts(r.Context())
	if err != nil {
		s.serverError(w, "loading posts", err)
		return
	}
	post, ok := collection.Find(posts, chi.URLParam(r, "id"))
	if !ok {
		s.notFound(w)
		return
	}

	flag := &carousel.ScrollFlag{}
	flag.LockScroll()
	s.render(w, "post.html", postData{
		pageData: s.page(post.Title, "news", flag),
		Post:     post,
	})
}

func (s *Site) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	data, err := staticFS.ReadFile("static/" + name)
	if err != nil {
		s.notFound(w)
		return
	}
	switch {
	case strings.HasSuffix(name, ".js"):
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	case strings.HasSuffix(name, ".css"):
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

func (s *Site) serverError(w http.ResponseWriter, what string, err error) {
	s.logger.Error("failed "+what, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (s *Site) notFound(w http.ResponseWriter) {
	s.renderStatus(w, http.StatusNotFound, "notfound.html", s.page("Not Found", "", nil))
}
