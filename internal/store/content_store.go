// ABOUTME: Typed read/write accessors for every content family on top of a Backend
// ABOUTME: Absent or malformed values resolve to seed defaults instead of errors

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/2389/cafesite/internal/content"
)

// ContentStore exposes one accessor pair per content family.
// Reads never fail for a missing or corrupt key; only backend I/O errors are returned.
type ContentStore struct {
	backend Backend
	logger  *slog.Logger
}

// NewContentStore wraps a Backend with typed accessors.
func NewContentStore(backend Backend) *ContentStore {
	return &ContentStore{
		backend: backend,
		logger:  slog.Default().With("component", "content-store"),
	}
}

// Backend returns the underlying key-value backend.
func (s *ContentStore) Backend() Backend {
	return s.backend
}

// load decodes the value under key, falling back to seed() when the key is absent
// or the stored bytes do not decode into T.
func load[T any](ctx context.Context, s *ContentStore, key string, seed func() T) (T, error) {
	raw, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return seed(), nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("reading %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn("stored value is malformed, using seed default", "key", key, "error", err)
		return seed(), nil
	}
	return v, nil
}

// save serializes v and overwrites key in one write.
func save[T any](ctx context.Context, s *ContentStore, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.backend.Put(ctx, key, raw); err != nil {
		return err
	}
	return nil
}

// Menu returns the persisted menu, or the seed menu.
func (s *ContentStore) Menu(ctx context.Context) ([]content.MenuItem, error) {
	items, err := load(ctx, s, KeyMenu, content.SeedMenu)
	if err != nil {
		return nil, err
	}
	if items == nil {
		// a stored JSON null is treated like an absent value
		return content.SeedMenu(), nil
	}
	return items, nil
}

// SaveMenu overwrites the whole menu collection.
func (s *ContentStore) SaveMenu(ctx context.Context, items []content.MenuItem) error {
	return save(ctx, s, KeyMenu, nonNil(items))
}

// Gallery returns the persisted gallery, or the seed gallery.
func (s *ContentStore) Gallery(ctx context.Context) ([]content.GalleryItem, error) {
	items, err := load(ctx, s, KeyGallery, content.SeedGallery)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return content.SeedGallery(), nil
	}
	return items, nil
}

// SaveGallery overwrites the whole gallery collection.
func (s *ContentStore) SaveGallery(ctx context.Context, items []content.GalleryItem) error {
	return save(ctx, s, KeyGallery, nonNil(items))
}

// Posts returns the persisted posts in stored order, or the seed posts.
func (s *ContentStore) Posts(ctx context.Context) ([]content.Post, error) {
	posts, err := load(ctx, s, KeyPosts, content.SeedPosts)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		return content.SeedPosts(), nil
	}
	return posts, nil
}

// SavePosts overwrites the whole post collection.
func (s *ContentStore) SavePosts(ctx context.Context, posts []content.Post) error {
	return save(ctx, s, KeyPosts, nonNil(posts))
}

// AboutPage returns the about-page document with exactly three philosophy items.
func (s *ContentStore) AboutPage(ctx context.Context) (content.AboutPage, error) {
	about, err := load(ctx, s, KeyAbout, content.SeedAboutPage)
	if err != nil {
		return content.AboutPage{}, err
	}
	about.NormalizePhilosophy(content.SeedPhilosophy())
	if about.Gallery.Images == nil {
		about.Gallery.Images = []content.AboutImage{}
	}
	return about, nil
}

// SaveAboutPage overwrites the about-page document.
func (s *ContentStore) SaveAboutPage(ctx context.Context, about content.AboutPage) error {
	about = about.Clone()
	about.NormalizePhilosophy(content.SeedPhilosophy())
	about.Gallery.Images = nonNil(about.Gallery.Images)
	return save(ctx, s, KeyAbout, about)
}

// SiteConfig returns the site-wide settings.
func (s *ContentStore) SiteConfig(ctx context.Context) (content.SiteConfig, error) {
	return load(ctx, s, KeyConfig, content.SeedSiteConfig)
}

// SaveSiteConfig overwrites the site-wide settings.
func (s *ContentStore) SaveSiteConfig(ctx context.Context, cfg content.SiteConfig) error {
	return save(ctx, s, KeyConfig, cfg)
}

// AdminPassword returns the current admin credential. An empty stored value is
// treated as absent so the credential is never empty.
func (s *ContentStore) AdminPassword(ctx context.Context) (string, error) {
	secret, err := load(ctx, s, KeyAdminPassword, func() string { return content.DefaultAdminPassword })
	if err != nil {
		return "", err
	}
	if secret == "" {
		return content.DefaultAdminPassword, nil
	}
	return secret, nil
}

// SaveAdminPassword overwrites the admin credential. Callers are expected to have
// validated the secret already; this rejects short secrets as a last line.
func (s *ContentStore) SaveAdminPassword(ctx context.Context, secret string) error {
	if err := content.ValidatePassword(secret); err != nil {
		return err
	}
	return save(ctx, s, KeyAdminPassword, secret)
}

// Reset deletes key so the next read returns its seed default.
func (s *ContentStore) Reset(ctx context.Context, key string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown content key %q", key)
	}
	return s.backend.Delete(ctx, key)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
