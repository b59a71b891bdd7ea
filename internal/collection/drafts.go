// ABOUTME: Drafts for new records, patches for edits, and their validation rules
// ABOUTME: Patches shallow-merge set fields over an existing record and always keep its id

package collection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2389/cafesite/internal/content"
)

// ErrValidation wraps every draft/patch validation failure.
var ErrValidation = errors.New("validation failed")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// MenuItemDraft is the input for a new menu item.
type MenuItemDraft struct {
	Name        string
	NameEng     string
	Description string
	Price       int
	Category    content.MenuCategory
	ImageURL    string
	IsSignature bool
}

// Validate requires a name and a positive price.
func (d MenuItemDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("menu item name is required")
	}
	if d.Price <= 0 {
		return invalid("menu item price must be positive")
	}
	return nil
}

// MenuItemPatch holds edited menu item fields; nil fields are left unchanged.
type MenuItemPatch struct {
	Name        *string
	NameEng     *string
	Description *string
	Price       *int
	Category    *content.MenuCategory
	ImageURL    *string
	IsSignature *bool
}

// Apply merges the patch over item, keeping item.ID.
func (p MenuItemPatch) Apply(item content.MenuItem) content.MenuItem {
	setIf(&item.Name, p.Name)
	setIf(&item.NameEng, p.NameEng)
	setIf(&item.Description, p.Description)
	setIf(&item.Price, p.Price)
	setIf(&item.Category, p.Category)
	setIf(&item.ImageURL, p.ImageURL)
	setIf(&item.IsSignature, p.IsSignature)
	return item
}

// Validate checks the merged result against the same rules as a draft.
func (p MenuItemPatch) Validate(existing content.MenuItem) error {
	merged := p.Apply(existing)
	return MenuItemDraft{Name: merged.Name, Price: merged.Price}.Validate()
}

// GalleryItemDraft is the input for a new gallery image.
type GalleryItemDraft struct {
	Title    string
	ImageURL string
	Category content.GalleryCategory
}

// Validate requires a title and an image.
func (d GalleryItemDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return invalid("gallery title is required")
	}
	if strings.TrimSpace(d.ImageURL) == "" {
		return invalid("gallery image is required")
	}
	return nil
}

// GalleryItemPatch holds edited gallery fields; nil fields are left unchanged.
type GalleryItemPatch struct {
	Title    *string
	ImageURL *string
	Category *content.GalleryCategory
}

// Apply merges the patch over item, keeping item.ID.
func (p GalleryItemPatch) Apply(item content.GalleryItem) content.GalleryItem {
	setIf(&item.Title, p.Title)
	setIf(&item.ImageURL, p.ImageURL)
	setIf(&item.Category, p.Category)
	return item
}

// Validate checks the merged result.
func (p GalleryItemPatch) Validate(existing content.GalleryItem) error {
	merged := p.Apply(existing)
	return GalleryItemDraft{Title: merged.Title, ImageURL: merged.ImageURL}.Validate()
}

// PostDraft is the input for a new post. An empty Date means today.
type PostDraft struct {
	Title    string
	Content  string
	Date     string
	Category content.PostCategory
	ImageURL string
	IsPinned bool
}

// Validate requires a title and content.
func (d PostDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return invalid("post title is required")
	}
	if strings.TrimSpace(d.Content) == "" {
		return invalid("post content is required")
	}
	return nil
}

// PostPatch holds edited post fields; nil fields are left unchanged.
// A non-nil empty Date is replaced with today's date by the service.
type PostPatch struct {
	Title    *string
	Content  *string
	Date     *string
	Category *content.PostCategory
	ImageURL *string
	IsPinned *bool
}

// Apply merges the patch over post, keeping post.ID.
func (p PostPatch) Apply(post content.Post) content.Post {
	setIf(&post.Title, p.Title)
	setIf(&post.Content, p.Content)
	setIf(&post.Date, p.Date)
	setIf(&post.Category, p.Category)
	setIf(&post.ImageURL, p.ImageURL)
	setIf(&post.IsPinned, p.IsPinned)
	return post
}

// Validate checks the merged result.
func (p PostPatch) Validate(existing content.Post) error {
	merged := p.Apply(existing)
	return PostDraft{Title: merged.Title, Content: merged.Content}.Validate()
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
