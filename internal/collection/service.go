// ABOUTME: Collection service: create/update/delete for menu, gallery, posts, and about-page images
// ABOUTME: Reads the full collection, computes the next one, and writes it back through the content store

package collection

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/2389/cafesite/internal/content"
	"github.com/2389/cafesite/internal/store"
)

// PlaceholderImageURL returns the stand-in image for a menu item created without one.
func PlaceholderImageURL(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/800/600", seed)
}

// NewAboutImageCaption is the caption given to images appended to the about gallery.
const NewAboutImageCaption = "New Image"

// Service applies collection rules and persists the result.
type Service struct {
	store  *store.ContentStore
	idGen  func() string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides the id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.idGen = gen }
}

// WithClock overrides the time source used for default post dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a collection service over cs.
func NewService(cs *store.ContentStore, opts ...Option) *Service {
	s := &Service{
		store:  cs,
		idGen:  func() string { return ulid.Make().String() },
		now:    time.Now,
		logger: slog.Default().With("component", "collection"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying content store.
func (s *Service) Store() *store.ContentStore {
	return s.store
}

// Today returns the current calendar date in DateLayout.
func (s *Service) Today() string {
	return content.FormatDate(s.now())
}

// CreateMenuItem validates d, assigns a new id, and puts the item first.
func (s *Service) CreateMenuItem(ctx context.Context, d MenuItemDraft) (content.MenuItem, error) {
	if err := d.Validate(); err != nil {
		return content.MenuItem{}, err
	}
	items, err := s.store.Menu(ctx)
	if err != nil {
		return content.MenuItem{}, err
	}

	id := s.uniqueID(func(id string) bool { _, ok := Find(items, id); return ok })
	item := content.MenuItem{
		ID:          id,
		Name:        d.Name,
		NameEng:     d.NameEng,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		ImageURL:    d.ImageURL,
		IsSignature: d.IsSignature,
	}
	if item.Category == "" {
		item.Category = content.CategoryCoffee
	}
	if item.ImageURL == "" {
		item.ImageURL = PlaceholderImageURL(id)
	}

	if err := s.store.SaveMenu(ctx, Prepend(items, item)); err != nil {
		return content.MenuItem{}, fmt.Errorf("saving menu: %w", err)
	}
	s.logger.Info("created menu item", "id", item.ID, "name", item.Name)
	return item, nil
}

// UpdateMenuItem merges p over the item with id. found is false (and nothing is
// written) when no item has that id.
func (s *Service) UpdateMenuItem(ctx context.Context, id string, p MenuItemPatch) (item content.MenuItem, found bool, err error) {
	items, err := s.store.Menu(ctx)
	if err != nil {
		return content.MenuItem{}, false, err
	}
	existing, ok := Find(items, id)
	if !ok {
		return content.MenuItem{}, false, nil
	}
	if err := p.Validate(existing); err != nil {
		return content.MenuItem{}, true, err
	}

	updated, _ := Replace(items, id, func(m content.MenuItem) content.MenuItem {
		merged := p.Apply(m)
		merged.ID = m.ID
		return merged
	})
	if err := s.store.SaveMenu(ctx, updated); err != nil {
		return content.MenuItem{}, true, fmt.Errorf("saving menu: %w", err)
	}
	item, _ = Find(updated, id)
	s.logger.Info("updated menu item", "id", id)
	return item, true, nil
}

// DeleteMenuItem removes the item with id. Deleting an absent id is a no-op.
func (s *Service) DeleteMenuItem(ctx context.Context, id string) (bool, error) {
	items, err := s.store.Menu(ctx)
	if err != nil {
		return false, err
	}
	remaining, found := Remove(items, id)
	if !found {
		return false, nil
	}
	if err := s.store.SaveMenu(ctx, remaining); err != nil {
		return true, fmt.Errorf("saving menu: %w", err)
	}
	s.logger.Info("deleted menu item", "id", id)
	return true, nil
}

// CreateGalleryItem validates d, assigns a new id, and puts the image first.
func (s *Service) CreateGalleryItem(ctx context.Context, d GalleryItemDraft) (content.GalleryItem, error) {
	if err := d.Validate(); err != nil {
		return content.GalleryItem{}, err
	}
	items, err := s.store.Gallery(ctx)
	if err != nil {
		return content.GalleryItem{}, err
	}

	item := content.GalleryItem{
		ID:       s.uniqueID(func(id string) bool { _, ok := Find(items, id); return ok }),
		Title:    d.Title,
		ImageURL: d.ImageURL,
		Category: d.Category,
	}
	if item.Category == "" {
		item.Category = content.GalleryInterior
	}

	if err := s.store.SaveGallery(ctx, Prepend(items, item)); err != nil {
		return content.GalleryItem{}, fmt.Errorf("saving gallery: %w", err)
	}
	s.logger.Info("created gallery item", "id", item.ID)
	return item, nil
}

// UpdateGalleryItem merges p over the image with id.
func (s *Service) UpdateGalleryItem(ctx context.Context, id string, p GalleryItemPatch) (item content.GalleryItem, found bool, err error) {
	items, err := s.store.Gallery(ctx)
	if err != nil {
		return content.GalleryItem{}, false, err
	}
	existing, ok := Find(items, id)
	if !ok {
		return content.GalleryItem{}, false, nil
	}
	if err := p.Validate(existing); err != nil {
		return content.GalleryItem{}, true, err
	}

	updated, _ := Replace(items, id, func(g content.GalleryItem) content.GalleryItem {
		merged := p.Apply(g)
		merged.ID = g.ID
		return merged
	})
	if err := s.store.SaveGallery(ctx, updated); err != nil {
		return content.GalleryItem{}, true, fmt.Errorf("saving gallery: %w", err)
	}
	item, _ = Find(updated, id)
	s.logger.Info("updated gallery item", "id", id)
	return item, true, nil
}

// DeleteGalleryItem removes the image with id. Deleting an absent id is a no-op.
func (s *Service) DeleteGalleryItem(ctx context.Context, id string) (bool, error) {
	items, err := s.store.Gallery(ctx)
	if err != nil {
		return false, err
	}
	remaining, found := Remove(items, id)
	if !found {
		return false, nil
	}
	if err := s.store.SaveGallery(ctx, remaining); err != nil {
		return true, fmt.Errorf("saving gallery: %w", err)
	}
	s.logger.Info("deleted gallery item", "id", id)
	return true, nil
}

// CreatePost validates d, defaults the date to today, assigns an id, and puts the post first.
func (s *Service) CreatePost(ctx context.Context, d PostDraft) (content.Post, error) {
	if err := d.Validate(); err != nil {
		return content.Post{}, err
	}
	posts, err := s.store.Posts(ctx)
	if err != nil {
		return content.Post{}, err
	}

	post := content.Post{
		ID:       s.uniqueID(func(id string) bool { _, ok := Find(posts, id); return ok }),
		Title:    d.Title,
		Content:  d.Content,
		Date:     d.Date,
		Category: d.Category,
		ImageURL: d.ImageURL,
		IsPinned: d.IsPinned,
	}
	if post.Date == "" {
		post.Date = s.Today()
	}
	if post.Category == "" {
		post.Category = content.PostNotice
	}

	if err := s.store.SavePosts(ctx, Prepend(posts, post)); err != nil {
		return content.Post{}, fmt.Errorf("saving posts: %w", err)
	}
	s.logger.Info("created post", "id", post.ID, "pinned", post.IsPinned)
	return post, nil
}

// UpdatePost merges p over the post with id. A present but empty date becomes today.
func (s *Service) UpdatePost(ctx context.Context, id string, p PostPatch) (post content.Post, found bool, err error) {
	posts, err := s.store.Posts(ctx)
	if err != nil {
		return content.Post{}, false, err
	}
	existing, ok := Find(posts, id)
	if !ok {
		return content.Post{}, false, nil
	}
	if err := p.Validate(existing); err != nil {
		return content.Post{}, true, err
	}
	if p.Date != nil && *p.Date == "" {
		today := s.Today()
		p.Date = &today
	}

	updated, _ := Replace(posts, id, func(old content.Post) content.Post {
		merged := p.Apply(old)
		merged.ID = old.ID
		return merged
	})
	if err := s.store.SavePosts(ctx, updated); err != nil {
		return content.Post{}, true, fmt.Errorf("saving posts: %w", err)
	}
	post, _ = Find(updated, id)
	s.logger.Info("updated post", "id", id)
	return post, true, nil
}

// DeletePost removes the post with id. Deleting an absent id is a no-op.
func (s *Service) DeletePost(ctx context.Context, id string) (bool, error) {
	posts, err := s.store.Posts(ctx)
	if err != nil {
		return false, err
	}
	remaining, found := Remove(posts, id)
	if !found {
		return false, nil
	}
	if err := s.store.SavePosts(ctx, remaining); err != nil {
		return true, fmt.Errorf("saving posts: %w", err)
	}
	s.logger.Info("deleted post", "id", id)
	return true, nil
}

// PublicPosts returns posts in news-page order, filtered by category.
func (s *Service) PublicPosts(ctx context.Context, category string) ([]content.Post, error) {
	posts, err := s.store.Posts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPosts(SortPostsPublic(posts), category), nil
}

// AdminPosts returns posts in admin-listing order (date only).
func (s *Service) AdminPosts(ctx context.Context) ([]content.Post, error) {
	posts, err := s.store.Posts(ctx)
	if err != nil {
		return nil, err
	}
	return SortPostsAdmin(posts), nil
}

// AppendAboutImage adds an already-admitted image to the end of the about gallery
// of doc and returns the new document. The caller decides when to persist it.
func (s *Service) AppendAboutImage(doc content.AboutPage, url string) (content.AboutPage, content.AboutImage) {
	doc = doc.Clone()
	img := content.AboutImage{
		ID:      s.uniqueID(func(id string) bool { _, ok := Find(doc.Gallery.Images, id); return ok }),
		URL:     url,
		Caption: NewAboutImageCaption,
	}
	doc.Gallery.Images = Append(doc.Gallery.Images, img)
	return doc, img
}

// RemoveAboutImage drops the image with id from the about gallery of doc.
func (s *Service) RemoveAboutImage(doc content.AboutPage, id string) (content.AboutPage, bool) {
	doc = doc.Clone()
	var found bool
	doc.Gallery.Images, found = Remove(doc.Gallery.Images, id)
	return doc, found
}

// SaveAboutPage persists the about-page document.
func (s *Service) SaveAboutPage(ctx context.Context, doc content.AboutPage) error {
	if err := s.store.SaveAboutPage(ctx, doc); err != nil {
		return fmt.Errorf("saving about page: %w", err)
	}
	s.logger.Info("updated about page", "gallery_images", len(doc.Gallery.Images))
	return nil
}

// SaveSiteConfig persists the site-wide settings.
func (s *Service) SaveSiteConfig(ctx context.Context, cfg content.SiteConfig) error {
	if err := s.store.SaveSiteConfig(ctx, cfg); err != nil {
		return fmt.Errorf("saving site config: %w", err)
	}
	s.logger.Info("updated site config")
	return nil
}

// ChangePassword replaces the admin secret after checking its length.
func (s *Service) ChangePassword(ctx context.Context, secret string) error {
	if err := s.store.SaveAdminPassword(ctx, secret); err != nil {
		return fmt.Errorf("changing admin password: %w", err)
	}
	s.logger.Info("changed admin password")
	return nil
}

// uniqueID draws ids until one is not taken, then falls back to a numeric suffix.
func (s *Service) uniqueID(taken func(string) bool) string {
	id := s.idGen()
	for i := 0; taken(id) && i < 8; i++ {
		id = s.idGen()
	}
	base := id
	for n := 2; taken(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}
