// ABOUTME: Tests for the generic collection mutations, ordering rules, and editor state
// ABOUTME: Uses plain menu and post fixtures with no store involved

package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2389/cafesite/internal/content"
)

func TestPrependDoesNotMutateInput(t *testing.T) {
	items := content.SeedGallery()
	out := Prepend(items, content.GalleryItem{ID: "new"})
	assert.Equal(t, "new", out[0].ID)
	assert.Len(t, out, len(items)+1)
	assert.Equal(t, content.SeedGallery(), items)
}

func TestReplaceOnlyTouchesMatch(t *testing.T) {
	items := content.SeedGallery()
	out, found := Replace(items, "g2", func(g content.GalleryItem) content.GalleryItem {
		g.Title = "changed"
		return g
	})
	assert.True(t, found)
	assert.Equal(t, "changed", out[1].Title)
	assert.Equal(t, items[0], out[0])
	assert.Equal(t, items[2], out[2])
	assert.NotEqual(t, "changed", items[1].Title)

	_, found = Replace(items, "nope", func(g content.GalleryItem) content.GalleryItem { return g })
	assert.False(t, found)
}

func TestRemove(t *testing.T) {
	items := content.SeedGallery()
	out, found := Remove(items, "g1")
	assert.True(t, found)
	assert.Len(t, out, len(items)-1)
	_, ok := Find(out, "g1")
	assert.False(t, ok)

	out, found = Remove(out, "g1")
	assert.False(t, found)
	assert.Len(t, out, len(items)-1)
}

func TestSortPostsPublic_StableForEqualKeys(t *testing.T) {
	posts := []content.Post{
		{ID: "x", Date: "2024-02-02"},
		{ID: "y", Date: "2024-02-02"},
		{ID: "z", Date: "2024-02-02", IsPinned: true},
	}
	assert.Equal(t, []string{"z", "x", "y"}, ids(SortPostsPublic(posts)))
	assert.Equal(t, "x", posts[0].ID)
}

func TestSortPostsPublic_PinnedAlwaysAboveUnpinned(t *testing.T) {
	posts := []content.Post{
		{ID: "old-pinned", Date: "2001-01-01", IsPinned: true},
		{ID: "new", Date: "2030-01-01"},
		{ID: "bad-pinned", Date: "", IsPinned: true},
	}
	got := SortPostsPublic(posts)
	assert.Equal(t, []string{"old-pinned", "bad-pinned", "new"}, ids(got))
}

func TestSortPosts_UnparsableBelowPre1970(t *testing.T) {
	posts := []content.Post{
		{ID: "bad", Date: "someday"},
		{ID: "moon", Date: "1969-07-20"},
		{ID: "recent", Date: "2024-01-01"},
	}
	assert.Equal(t, []string{"recent", "moon", "bad"}, ids(SortPostsPublic(posts)))
	assert.Equal(t, []string{"recent", "moon", "bad"}, ids(SortPostsAdmin(posts)))
}

func TestFilterMenu(t *testing.T) {
	menu := content.SeedMenu()
	assert.Equal(t, menu, FilterMenu(menu, CategoryAll))
	assert.Equal(t, menu, FilterMenu(menu, ""))

	for _, c := range content.MenuCategories {
		for _, item := range FilterMenu(menu, string(c)) {
			assert.Equal(t, c, item.Category)
		}
	}
	assert.Empty(t, FilterMenu(menu, "tea"))
}

func TestSignature(t *testing.T) {
	menu := content.SeedMenu()
	sig := Signature(menu, 3)
	assert.LessOrEqual(t, len(sig), 3)
	for _, item := range sig {
		assert.True(t, item.IsSignature)
	}
	assert.Len(t, Signature(menu, 1), 1)
	assert.Empty(t, Signature(nil, 3))
}

func TestEditor(t *testing.T) {
	blank := func() content.Post { return content.Post{Category: content.PostNotice} }
	ed := NewEditor(blank)
	assert.False(t, ed.Editing())
	assert.Equal(t, content.PostNotice, ed.Draft.Category)

	ed.Edit(content.Post{ID: "p1", Title: "Hello"})
	assert.True(t, ed.Editing())

	ed.AfterDelete("p2")
	assert.Equal(t, "p1", ed.EditingID)

	ed.AfterDelete("p1")
	assert.False(t, ed.Editing())
	assert.Equal(t, blank(), ed.Draft)
}
