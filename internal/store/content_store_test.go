// ABOUTME: Tests for the typed content accessors
// ABOUTME: Covers seed fallback, round-trips for every family, corrupt values, and reset/export/import

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/cafesite/internal/content"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Backend{
		"mock":   NewMockBackend(),
		"sqlite": sqlite,
	}
}

func TestContentStore_FreshStoreReturnsSeeds(t *testing.T) {
	ctx := context.Background()
	cs := NewContentStore(NewMockBackend())

	menu, err := cs.Menu(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, menu)
	categories := map[content.MenuCategory]bool{}
	for _, m := range menu {
		categories[m.Category] = true
	}
	assert.Len(t, categories, len(content.MenuCategories))

	gallery, err := cs.Gallery(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SeedGallery(), gallery)

	posts, err := cs.Posts(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, posts)

	about, err := cs.AboutPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SeedAboutPage(), about)

	cfg, err := cs.SiteConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SeedSiteConfig(), cfg)

	pw, err := cs.AdminPassword(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultAdminPassword, pw)
}

func TestContentStore_RoundTrip(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			cs := NewContentStore(backend)

			menu := []content.MenuItem{{ID: "x1", Name: "Flat White", Price: 5000, Category: content.CategoryCoffee, ImageURL: "data:image/png;base64,AAAA"}}
			require.NoError(t, cs.SaveMenu(ctx, menu))
			gotMenu, err := cs.Menu(ctx)
			require.NoError(t, err)
			assert.Equal(t, menu, gotMenu)

			gallery := []content.GalleryItem{{ID: "g9", Title: "Bar", ImageURL: "https://example.com/bar.jpg", Category: content.GalleryInterior}}
			require.NoError(t, cs.SaveGallery(ctx, gallery))
			gotGallery, err := cs.Gallery(ctx)
			require.NoError(t, err)
			assert.Equal(t, gallery, gotGallery)

			posts := []content.Post{
				{ID: "p9", Title: "Closed", Date: "2024-05-01", Content: "Holiday", Category: content.PostNotice, IsPinned: true},
				{ID: "p8", Title: "Party", Date: "garbage", Content: "Come", Category: content.PostEvent},
			}
			require.NoError(t, cs.SavePosts(ctx, posts))
			gotPosts, err := cs.Posts(ctx)
			require.NoError(t, err)
			assert.Equal(t, posts, gotPosts)

			about := content.SeedAboutPage()
			about.Hero.Title = "Edited"
			about.Gallery.Images = append(about.Gallery.Images, content.AboutImage{ID: "a9", URL: "u", Caption: "c"})
			require.NoError(t, cs.SaveAboutPage(ctx, about))
			gotAbout, err := cs.AboutPage(ctx)
			require.NoError(t, err)
			assert.Equal(t, about, gotAbout)

			cfg := content.SiteConfig{HeroTitle: "H", HeroSubtitle: "S", PhilosophyBackgroundImage: "data:image/jpeg;base64,/9j/"}
			require.NoError(t, cs.SaveSiteConfig(ctx, cfg))
			gotCfg, err := cs.SiteConfig(ctx)
			require.NoError(t, err)
			assert.Equal(t, cfg, gotCfg)

			require.NoError(t, cs.SaveAdminPassword(ctx, "s3cret"))
			pw, err := cs.AdminPassword(ctx)
			require.NoError(t, err)
			assert.Equal(t, "s3cret", pw)
		})
	}
}

func TestContentStore_ReadsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	cs := NewContentStore(NewMockBackend())

	first, err := cs.Posts(ctx)
	require.NoError(t, err)
	second, err := cs.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, cs.SavePosts(ctx, first[:1]))
	third, err := cs.Posts(ctx)
	require.NoError(t, err)
	fourth, err := cs.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, third, fourth)
}

func TestContentStore_MalformedValueFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	backend := NewMockBackend()
	cs := NewContentStore(backend)

	backend.SetRaw(KeyMenu, []byte(`{not json`))
	backend.SetRaw(KeyGallery, []byte(`{"id":"wrong shape"}`))
	backend.SetRaw(KeyAbout, []byte(`[1,2,3]`))
	backend.SetRaw(KeyConfig, []byte(`"just a string"`))
	backend.SetRaw(KeyAdminPassword, []byte(`42`))
	backend.SetRaw(KeyPosts, []byte(`null`))

	menu, err := cs.Menu(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SeedMenu(), menu)

	gallery, err := cs.Gallery(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SeedGallery(), gallery)

	about, err := cs.AboutPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SeedAboutPage(), about)

	cfg, err := cs.SiteConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SeedSiteConfig(), cfg)

	pw, err := cs.AdminPassword(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultAdminPassword, pw)

	posts, err := cs.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SeedPosts(), posts)
}

func TestContentStore_EmptyCollectionIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	cs := NewContentStore(NewMockBackend())

	require.NoError(t, cs.SaveGallery(ctx, nil))
	gallery, err := cs.Gallery(ctx)
	require.NoError(t, err)
	assert.Empty(t, gallery)
}

func TestContentStore_AboutPageNormalizesPhilosophy(t *testing.T) {
	ctx := context.Background()
	backend := NewMockBackend()
	cs := NewContentStore(backend)

	backend.SetRaw(KeyAbout, []byte(`{"philosophy":{"title":"P","items":[{"title":"only"}]}}`))
	about, err := cs.AboutPage(ctx)
	require.NoError(t, err)
	require.Len(t, about.Philosophy.Items, content.PhilosophyItemCount)
	assert.Equal(t, "only", about.Philosophy.Items[0].Title)
	assert.NotNil(t, about.Gallery.Images)
}

func TestContentStore_AdminPasswordRules(t *testing.T) {
	ctx := context.Background()
	backend := NewMockBackend()
	cs := NewContentStore(backend)

	err := cs.SaveAdminPassword(ctx, "abc")
	assert.ErrorIs(t, err, content.ErrPasswordTooShort)
	assert.Equal(t, 0, backend.Puts())

	backend.SetRaw(KeyAdminPassword, []byte(`""`))
	pw, err := cs.AdminPassword(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultAdminPassword, pw)
}

func TestContentStore_BackendErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	backend := NewMockBackend()
	backend.FailPut = errors.New("disk full")
	cs := NewContentStore(backend)

	err := cs.SaveMenu(ctx, content.SeedMenu())
	assert.ErrorContains(t, err, "disk full")

	// failed write leaves the previous value visible
	menu, err := cs.Menu(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SeedMenu(), menu)
}

func TestContentStore_Reset(t *testing.T) {
	ctx := context.Background()
	cs := NewContentStore(NewMockBackend())

	require.NoError(t, cs.SaveSiteConfig(ctx, content.SiteConfig{HeroTitle: "custom"}))
	require.NoError(t, cs.Reset(ctx, KeyConfig))

	cfg, err := cs.SiteConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SeedSiteConfig(), cfg)

	assert.Error(t, cs.Reset(ctx, "nope"))
}

func TestContentStore_ExportImport(t *testing.T) {
	ctx := context.Background()
	src := NewContentStore(NewMockBackend())
	require.NoError(t, src.SaveAdminPassword(ctx, "moved-secret"))
	require.NoError(t, src.SaveMenu(ctx, content.SeedMenu()[:2]))

	snap, err := src.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Menu, 2)

	dst := NewContentStore(NewMockBackend())
	require.NoError(t, dst.Import(ctx, snap))

	again, err := dst.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, again)

	assert.Error(t, dst.Import(ctx, nil))
}
