// ABOUTME: Admin gallery tab: list, create, edit, and confirm-then-delete gallery images
// ABOUTME: A gallery item always needs an image, uploaded or linked

package webadmin

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/2389/cafesite/internal/collection"
	"github.com/2389/cafesite/internal/content"
)

func newGalleryEditor() *collection.Editor[content.GalleryItem] {
	return collection.NewEditor(func() content.GalleryItem {
		return content.GalleryItem{Category: content.GalleryInterior}
	})
}

func (a *Admin) handleGalleryPage(w http.ResponseWriter, r *http.Request) {
	r, csrfToken := a.ensureCSRFToken(w, r)
	a.renderGalleryPage(w, r, http.StatusOK, csrfToken, newGalleryEditor(), "")
}

func (a *Admin) renderGalleryPage(w http.ResponseWriter, r *http.Request, status int, csrfToken string, ed *collection.Editor[content.GalleryItem], errMsg string) {
	items, err := a.service.Store().Gallery(r.Context())
	if err != nil {
		a.serverError(w, "loading gallery", err)
		return
	}

	if !ed.Editing() && errMsg == "" {
		if id := r.URL.Query().Get("edit"); id != "" {
			if item, ok := collection.Find(items, id); ok {
				ed.Edit(item)
			}
		}
	}

	hdr := a.header(r, "Gallery", "gallery", csrfToken)
	hdr.Error = errMsg
	a.render(w, status, "gallery.html", galleryPageData{
		pageHeader: hdr,
		Items:      items,
		Editor:     ed,
		Categories: galleryCategoryOptions,
	})
}

func (a *Admin) handleGallerySave(w http.ResponseWriter, r *http.Request) {
	if !a.parseMutation(w, r) {
		return
	}

	id := formString(r, "id")
	title := formString(r, "title")
	submitted := content.GalleryItem{ID: id, Title: title, Category: content.GalleryCategory(r.FormValue("category"))}
	fail := func(err error) {
		ed := newGalleryEditor()
		ed.Edit(submitted)
		a.formFailure(w, r, err, func(status int, csrfToken, msg string) {
			a.renderGalleryPage(w, r, status, csrfToken, ed, msg)
		})
	}

	category, err := parseGalleryCategory(r.FormValue("category"))
	if err != nil {
		fail(err)
		return
	}
	submitted.Category = category

	image, hasImage, err := imageField(r, "image_file", "image_url")
	if err != nil {
		fail(err)
		return
	}
	if hasImage {
		submitted.ImageURL = image
	}

	if id == "" {
		_, err := a.service.CreateGalleryItem(r.Context(), collection.GalleryItemDraft{
			Title: title, ImageURL: submitted.ImageURL, Category: category,
		})
		if err != nil {
			fail(err)
			return
		}
		redirectWithNotice(w, r, "/admin/gallery", "created", nil)
		return
	}

	patch := collection.GalleryItemPatch{Title: &title, Category: &category}
	if hasImage {
		patch.ImageURL = &image
	}
	_, found, err := a.service.UpdateGalleryItem(r.Context(), id, patch)
	if err != nil {
		fail(err)
		return
	}
	if !found {
		redirectWithNotice(w, r, "/admin/gallery", "", nil)
		return
	}
	redirectWithNotice(w, r, "/admin/gallery", "updated", nil)
}

func (a *Admin) handleGalleryDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	r, csrfToken := a.ensureCSRFToken(w, r)
	id := chi.URLParam(r, "id")

	items, err := a.service.Store().Gallery(r.Context())
	if err != nil {
		a.serverError(w, "loading gallery", err)
		return
	}
	item, ok := collection.Find(items, id)
	if !ok {
		http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
		return
	}

	a.renderConfirm(w, r, csrfToken, "gallery",
		fmt.Sprintf("'%s' 이미지를 삭제하시겠습니까?", item.Title),
		"/admin/gallery/"+url.PathEscape(id)+"/delete", "/admin/gallery")
}

func (a *Admin) handleGalleryDelete(w http.ResponseWriter, r *http.Request) {
	if !a.parseMutation(w, r) {
		return
	}
	id := chi.URLParam(r, "id")

	found, err := a.service.DeleteGalleryItem(r.Context(), id)
	if err != nil {
		a.serverError(w, "deleting gallery item", err)
		return
	}
	redirectAfterDelete(w, r, "/admin/gallery", newGalleryEditor(), id, found)
}
