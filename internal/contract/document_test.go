// ABOUTME: Contract tests for the persisted JSON document shapes and storage keys.
// ABOUTME: Existing databases must keep decoding after a refactor, so field names are pinned here.

package contract

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/cafesite/internal/content"
	"github.com/2389/cafesite/internal/store"
)

func TestStorageKeys(t *testing.T) {
	want := []string{
		"cafe_menu",
		"cafe_gallery",
		"cafe_posts",
		"cafe_about",
		"cafe_config",
		"cafe_admin_password",
	}
	assert.Equal(t, want, store.Keys)
}

// fieldsOf returns the top-level JSON object keys produced for v.
func fieldsOf(t *testing.T, v any) []string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func TestDocumentFields(t *testing.T) {
	tests := []struct {
		name string
		doc  any
		want []string
	}{
		{
			name: "menu item",
			doc:  content.MenuItem{},
			want: []string{"category", "description", "id", "imageUrl", "isSignature", "name", "nameEng", "price"},
		},
		{
			name: "gallery item",
			doc:  content.GalleryItem{},
			want: []string{"category", "id", "imageUrl", "title"},
		},
		{
			name: "post with optional fields",
			doc:  content.Post{ImageURL: "x", IsPinned: true},
			want: []string{"category", "content", "date", "id", "imageUrl", "isPinned", "title"},
		},
		{
			name: "post without optional fields",
			doc:  content.Post{},
			want: []string{"category", "content", "date", "id", "title"},
		},
		{
			name: "about page",
			doc:  content.AboutPage{},
			want: []string{"gallery", "hero", "location", "philosophy", "story"},
		},
		{
			name: "about image",
			doc:  content.AboutImage{},
			want: []string{"caption", "id", "url"},
		},
		{
			name: "site config",
			doc:  content.SiteConfig{},
			want: []string{"heroSubtitle", "heroTitle", "philosophyBackgroundImage"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldsOf(t, tt.doc))
		})
	}
}

// TestLegacyDocumentDecodes feeds a document written by an older deployment.
func TestLegacyDocumentDecodes(t *testing.T) {
	raw := `[{"id":"1","name":"아메리카노","nameEng":"Americano","description":"d","price":4500,"category":"coffee","imageUrl":"https://example.com/a.jpg","isSignature":true}]`

	var items []content.MenuItem
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 4500, items[0].Price)
	assert.Equal(t, content.MenuCategory("coffee"), items[0].Category)
	assert.True(t, items[0].IsSignature)
}
