// Package store provides durable persistence for the cafe site.
//
// # Architecture
//
// Two layers:
//
//   - Backend: a key-value store of serialized documents (Get, Put, Delete)
//   - ContentStore: typed accessors, one pair per content family
//
// SQLiteStore implements Backend on a single table; MockBackend is the
// in-memory implementation used by unit tests.
//
// # Keys
//
// Each content family is stored as one JSON document under a fixed key:
//
//	cafe_menu            []content.MenuItem
//	cafe_gallery         []content.GalleryItem
//	cafe_posts           []content.Post
//	cafe_about           content.AboutPage
//	cafe_config          content.SiteConfig
//	cafe_admin_password  string
//
// Writes replace the whole document. There is no patch path and no
// cross-process coordination: concurrent writers are last-write-wins.
//
// # Seed Defaults
//
// Reads never fail because a key is missing. An absent key, a JSON null, or a
// value that no longer decodes into the expected type all resolve to the seed
// defaults in package content. Decode failures are logged at warn level.
//
// # SQLite Configuration
//
// Two drivers are supported:
//
//   - "sqlite": modernc.org/sqlite, pure Go (default)
//   - "sqlite3": github.com/mattn/go-sqlite3, requires cgo
//
// The database runs in WAL mode. Database file locations:
//
//   - Production: /var/lib/cafesite/site.db
//   - Development: ~/.local/share/cafesite/site.db
//   - Testing: a file under t.TempDir(), or :memory:
//
// # Testing
//
// Use NewMockBackend() for unit tests:
//
//	cs := store.NewContentStore(store.NewMockBackend())
package store
