// ABOUTME: Backend interface and storage keys for cafe-site persistence
// ABOUTME: Every content family lives under one fixed key as a JSON document

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when a key has never been written
var ErrNotFound = errors.New("not found")

// Storage keys, one per content family.
const (
	KeyMenu          = "cafe_menu"
	KeyGallery       = "cafe_gallery"
	KeyPosts         = "cafe_posts"
	KeyAbout         = "cafe_about"
	KeyConfig        = "cafe_config"
	KeyAdminPassword = "cafe_admin_password"
)

// Keys lists every storage key in a stable order.
var Keys = []string{KeyMenu, KeyGallery, KeyPosts, KeyAbout, KeyConfig, KeyAdminPassword}

// IsKnownKey reports whether key is one of the content family keys.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Backend is a durable key-value store holding serialized documents.
// Put must replace the whole value atomically.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Keys lists the keys that currently hold a value, sorted
	Keys(ctx context.Context) ([]string, error)

	// Close releases any resources held by the backend
	Close() error
}
