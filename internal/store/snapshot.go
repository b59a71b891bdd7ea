// ABOUTME: Whole-store export and import as a single JSON document
// ABOUTME: Used by the operator CLI for backups and migrations between databases

package store

import (
	"context"
	"fmt"

	"github.com/2389/cafesite/internal/content"
)

// Snapshot is every content family at one point in time.
type Snapshot struct {
	Menu          []content.MenuItem    `json:"menu"`
	Gallery       []content.GalleryItem `json:"gallery"`
	Posts         []content.Post        `json:"posts"`
	About         content.AboutPage     `json:"about"`
	Config        content.SiteConfig    `json:"config"`
	AdminPassword string                `json:"adminPassword,omitempty"`
}

// Export reads every family, substituting seeds where nothing is stored.
func (s *ContentStore) Export(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Menu, err = s.Menu(ctx); err != nil {
		return nil, err
	}
	if snap.Gallery, err = s.Gallery(ctx); err != nil {
		return nil, err
	}
	if snap.Posts, err = s.Posts(ctx); err != nil {
		return nil, err
	}
	if snap.About, err = s.AboutPage(ctx); err != nil {
		return nil, err
	}
	if snap.Config, err = s.SiteConfig(ctx); err != nil {
		return nil, err
	}
	if snap.AdminPassword, err = s.AdminPassword(ctx); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Import writes every family from snap. An empty AdminPassword leaves the
// current credential untouched.
func (s *ContentStore) Import(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("importing: nil snapshot")
	}
	if err := s.SaveMenu(ctx, snap.Menu); err != nil {
		return fmt.Errorf("importing menu: %w", err)
	}
	if err := s.SaveGallery(ctx, snap.Gallery); err != nil {
		return fmt.Errorf("importing gallery: %w", err)
	}
	if err := s.SavePosts(ctx, snap.Posts); err != nil {
		return fmt.Errorf("importing posts: %w", err)
	}
	if err := s.SaveAboutPage(ctx, snap.About); err != nil {
		return fmt.Errorf("importing about page: %w", err)
	}
	if err := s.SaveSiteConfig(ctx, snap.Config); err != nil {
		return fmt.Errorf("importing site config: %w", err)
	}
	if snap.AdminPassword != "" {
		if err := s.SaveAdminPassword(ctx, snap.AdminPassword); err != nil {
			return fmt.Errorf("importing admin password: %w", err)
		}
	}
	return nil
}
