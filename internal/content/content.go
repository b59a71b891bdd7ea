// ABOUTME: Entity types for the cafe site: menu items, gallery images, posts, about page, site config
// ABOUTME: All records are plain JSON-serializable values owned by the content store

package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category string is not one of the known values.
var ErrUnknownCategory = errors.New("unknown category")

// MenuCategory classifies a menu item.
type MenuCategory string

// Menu categories, in display order.
const (
	CategoryCoffee   MenuCategory = "coffee"
	CategoryBeverage MenuCategory = "beverage"
	CategoryBakery   MenuCategory = "bakery"
	CategoryBrunch   MenuCategory = "brunch"
)

// MenuCategories lists every menu category in display order.
var MenuCategories = []MenuCategory{CategoryCoffee, CategoryBeverage, CategoryBakery, CategoryBrunch}

// ParseMenuCategory validates a raw category string.
func ParseMenuCategory(s string) (MenuCategory, error) {
	for _, c := range MenuCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: menu category %q", ErrUnknownCategory, s)
}

// GalleryCategory classifies a gallery image.
type GalleryCategory string

// Gallery categories.
const (
	GalleryInterior GalleryCategory = "interior"
	GalleryMenu     GalleryCategory = "menu"
)

// ParseGalleryCategory validates a raw gallery category string.
func ParseGalleryCategory(s string) (GalleryCategory, error) {
	switch GalleryCategory(s) {
	case GalleryInterior, GalleryMenu:
		return GalleryCategory(s), nil
	}
	return "", fmt.Errorf("%w: gallery category %q", ErrUnknownCategory, s)
}

// PostCategory classifies a news post.
type PostCategory string

// Post categories.
const (
	PostNotice PostCategory = "notice"
	PostEvent  PostCategory = "event"
)

// ParsePostCategory validates a raw post category string.
func ParsePostCategory(s string) (PostCategory, error) {
	switch PostCategory(s) {
	case PostNotice, PostEvent:
		return PostCategory(s), nil
	}
	return "", fmt.Errorf("%w: post category %q", ErrUnknownCategory, s)
}

// MenuItem is a single product on the menu.
// ImageURL holds either an external URL or an inline data: payload.
type MenuItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	NameEng     string       `json:"nameEng"`
	Description string       `json:"description"`
	Price       int          `json:"price"`
	Category    MenuCategory `json:"category"`
	ImageURL    string       `json:"imageUrl"`
	IsSignature bool         `json:"isSignature"`
}

// RecordID returns the item's stable identifier.
func (m MenuItem) RecordID() string { return m.ID }

// GalleryItem is an image shown on the standalone gallery page.
type GalleryItem struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	ImageURL string          `json:"imageUrl"`
	Category GalleryCategory `json:"category"`
}

// RecordID returns the item's stable identifier.
func (g GalleryItem) RecordID() string { return g.ID }

// Post is a notice or event on the news page.
type Post struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Date     string       `json:"date"`
	Content  string       `json:"content"`
	Category PostCategory `json:"category"`
	ImageURL string       `json:"imageUrl,omitempty"`
	IsPinned bool         `json:"isPinned,omitempty"`
}

// RecordID returns the post's stable identifier.
func (p Post) RecordID() string { return p.ID }

// PhilosophyItemCount is the fixed number of philosophy entries on the about page.
const PhilosophyItemCount = 3

// AboutPage is the singleton document behind the about page.
type AboutPage struct {
	Hero       AboutHero       `json:"hero"`
	Story      AboutStory      `json:"story"`
	Philosophy AboutPhilosophy `json:"philosophy"`
	Gallery    AboutGallery    `json:"gallery"`
	Location   AboutLocation   `json:"location"`
}

// AboutHero is the banner at the top of the about page.
type AboutHero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
}

// AboutStory is the two-paragraph brand story.
type AboutStory struct {
	Title        string `json:"title"`
	Description1 string `json:"description1"`
	Description2 string `json:"description2"`
	ImageMain    string `json:"imageMain"`
	ImageSub     string `json:"imageSub"`
}

// AboutPhilosophy holds exactly PhilosophyItemCount items.
type AboutPhilosophy struct {
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	Items    []PhilosophyItem `json:"items"`
}

// PhilosophyItem is one value statement.
type PhilosophyItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AboutGallery is the ordered image strip on the about page.
type AboutGallery struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Images      []AboutImage `json:"images"`
}

// AboutImage is one captioned image in the about gallery.
type AboutImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// RecordID returns the image's stable identifier.
func (a AboutImage) RecordID() string { return a.ID }

// AboutLocation is the address block and static map image.
type AboutLocation struct {
	Address    string `json:"address"`
	SubAddress string `json:"subAddress"`
	MapImage   string `json:"mapImage"`
}

// SiteConfig is the singleton site-wide settings document.
type SiteConfig struct {
	HeroTitle                 string `json:"heroTitle"`
	HeroSubtitle              string `json:"heroSubtitle"`
	PhilosophyBackgroundImage string `json:"philosophyBackgroundImage"`
}

// Clone returns a deep copy so callers can mutate nested slices freely.
func (a AboutPage) Clone() AboutPage {
	out := a
	out.Philosophy.Items = append([]PhilosophyItem(nil), a.Philosophy.Items...)
	out.Gallery.Images = append([]AboutImage(nil), a.Gallery.Images...)
	return out
}

// NormalizePhilosophy forces the philosophy list to exactly PhilosophyItemCount entries,
// padding from fallback and truncating extras.
func (a *AboutPage) NormalizePhilosophy(fallback []PhilosophyItem) {
	items := make([]PhilosophyItem, 0, PhilosophyItemCount)
	for i := 0; i < len(a.Philosophy.Items) && i < PhilosophyItemCount; i++ {
		items = append(items, a.Philosophy.Items[i])
	}
	for len(items) < PhilosophyItemCount {
		idx := len(items)
		var next PhilosophyItem
		if idx < len(fallback) {
			next = fallback[idx]
		}
		items = append(items, next)
	}
	a.Philosophy.Items = items
}

// MinPasswordLength is the shortest admin credential accepted.
const MinPasswordLength = 4

// ErrPasswordTooShort is returned when a new credential is shorter than MinPasswordLength.
var ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

// ValidatePassword checks a candidate admin credential. Surrounding whitespace does not count
// toward the minimum length.
func ValidatePassword(secret string) error {
	if len([]rune(strings.TrimSpace(secret))) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
