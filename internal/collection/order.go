// ABOUTME: Read-time ordering and filtering rules for posts and menu items
// ABOUTME: Public news order is pinned-first then newest; the admin listing ignores pins

package collection

import (
	"slices"

	"github.com/2389/cafesite/internal/content"
)

// CategoryAll is the implicit pass-through filter value.
const CategoryAll = "all"

// SortPostsPublic orders posts pinned first, then by date newest first.
// Unparsable dates sort as the earliest possible date. The sort is stable and
// returns a copy.
func SortPostsPublic(posts []content.Post) []content.Post {
	out := slices.Clone(posts)
	slices.SortStableFunc(out, func(a, b content.Post) int {
		if a.IsPinned != b.IsPinned {
			if a.IsPinned {
				return -1
			}
			return 1
		}
		return content.CompareDates(b.Date, a.Date)
	})
	return out
}

// SortPostsAdmin orders posts by date newest first, ignoring pins.
func SortPostsAdmin(posts []content.Post) []content.Post {
	out := slices.Clone(posts)
	slices.SortStableFunc(out, func(a, b content.Post) int {
		return content.CompareDates(b.Date, a.Date)
	})
	return out
}

// FilterPosts keeps posts in category; "" or "all" keeps everything.
func FilterPosts(posts []content.Post, category string) []content.Post {
	if category == "" || category == CategoryAll {
		return slices.Clone(posts)
	}
	out := make([]content.Post, 0, len(posts))
	for _, p := range posts {
		if string(p.Category) == category {
			out = append(out, p)
		}
	}
	return out
}

// FilterMenu keeps items in category; "" or "all" keeps everything.
// Collection order is preserved.
func FilterMenu(items []content.MenuItem, category string) []content.MenuItem {
	if category == "" || category == CategoryAll {
		return slices.Clone(items)
	}
	out := make([]content.MenuItem, 0, len(items))
	for _, item := range items {
		if string(item.Category) == category {
			out = append(out, item)
		}
	}
	return out
}

// Signature returns up to limit signature items in collection order.
func Signature(items []content.MenuItem, limit int) []content.MenuItem {
	out := make([]content.MenuItem, 0, limit)
	for _, item := range items {
		if len(out) >= limit {
			break
		}
		if item.IsSignature {
			out = append(out, item)
		}
	}
	return out
}
