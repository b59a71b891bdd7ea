// ABOUTME: Admin menu tab: list, create, edit, and confirm-then-delete menu items
// ABOUTME: Uploaded images are admitted through media before they reach the store

package webadmin

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/2389/cafesite/internal/collection"
	"github.com/2389/cafesite/internal/content"
)

func newMenuEditor() *collection.Editor[content.MenuItem] {
	return collection.NewEditor(func() content.MenuItem {
		return content.MenuItem{Category: content.CategoryCoffee}
	})
}

func (a *Admin) handleMenuPage(w http.ResponseWriter, r *http.Request) {
	r, csrfToken := a.ensureCSRFToken(w, r)

	ed := newMenuEditor()
	a.renderMenuPage(w, r, http.StatusOK, csrfToken, ed, "")
}

func (a *Admin) renderMenuPage(w http.ResponseWriter, r *http.Request, status int, csrfToken string, ed *collection.Editor[content.MenuItem], errMsg string) {
	items, err := a.service.Store().Menu(r.Context())
	if err != nil {
		a.serverError(w, "loading menu", err)
		return
	}

	if !ed.Editing() && errMsg == "" {
		if id := r.URL.Query().Get("edit"); id != "" {
			if item, ok := collection.Find(items, id); ok {
				ed.Edit(item)
			}
		}
	}

	hdr := a.header(r, "Menu", "menu", csrfToken)
	hdr.Error = errMsg
	a.render(w, status, "menu.html", menuPageData{
		pageHeader: hdr,
		Items:      items,
		Editor:     ed,
		Categories: menuCategoryOptions,
	})
}

func (a *Admin) handleMenuSave(w http.ResponseWriter, r *http.Request) {
	if !a.parseMutation(w, r) {
		return
	}

	id := formString(r, "id")
	name := formString(r, "name")
	nameEng := formString(r, "name_eng")
	desc := formString(r, "description")
	price := formInt(r, "price")
	signature := formBool(r, "is_signature")

	submitted := content.MenuItem{
		ID: id, Name: name, NameEng: nameEng, Description: desc,
		Price: price, IsSignature: signature, Category: content.MenuCategory(r.FormValue("category")),
	}
	fail := func(err error) {
		ed := newMenuEditor()
		ed.Edit(submitted)
		a.formFailure(w, r, err, func(status int, csrfToken, msg string) {
			a.renderMenuPage(w, r, status, csrfToken, ed, msg)
		})
	}

	category, err := parseMenuCategory(r.FormValue("category"))
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
		_, err := a.service.CreateMenuItem(r.Context(), collection.MenuItemDraft{
			Name: name, NameEng: nameEng, Description: desc, Price: price,
			Category: category, ImageURL: submitted.ImageURL, IsSignature: signature,
		})
		if err != nil {
			fail(err)
			return
		}
		redirectWithNotice(w, r, "/admin/menu", "created", nil)
		return
	}

	patch := collection.MenuItemPatch{
		Name: &name, NameEng: &nameEng, Description: &desc, Price: &price,
		Category: &category, IsSignature: &signature,
	}
	if hasImage {
		patch.ImageURL = &image
	}
	_, found, err := a.service.UpdateMenuItem(r.Context(), id, patch)
	if err != nil {
		fail(err)
		return
	}
	if !found {
		redirectWithNotice(w, r, "/admin/menu", "", nil)
		return
	}
	redirectWithNotice(w, r, "/admin/menu", "updated", nil)
}

func (a *Admin) handleMenuDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	r, csrfToken := a.ensureCSRFToken(w, r)
	id := chi.URLParam(r, "id")

	items, err := a.service.Store().Menu(r.Context())
	if err != nil {
		a.serverError(w, "loading menu", err)
		return
	}
	item, ok := collection.Find(items, id)
	if !ok {
		http.Redirect(w, r, "/admin/menu", http.StatusSeeOther)
		return
	}

	a.renderConfirm(w, r, csrfToken, "menu",
		fmt.Sprintf("'%s' 메뉴를 삭제하시겠습니까?", item.Name),
		"/admin/menu/"+url.PathEscape(id)+"/delete", "/admin/menu")
}

func (a *Admin) handleMenuDelete(w http.ResponseWriter, r *http.Request) {
	if !a.parseMutation(w, r) {
		return
	}
	id := chi.URLParam(r, "id")

	found, err := a.service.DeleteMenuItem(r.Context(), id)
	if err != nil {
		a.serverError(w, "deleting menu item", err)
		return
	}
	redirectAfterDelete(w, r, "/admin/menu", newMenuEditor(), id, found)
}

// parseMutation parses the form and checks CSRF. It writes the response and
// returns false when the request must stop.
func (a *Admin) parseMutation(w http.ResponseWriter, r *http.Request) bool {
	if err := parseForm(w, r); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "Request too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return false
	}
	return !a.forbidCSRF(w, r)
}

// formFailure re-renders a form with a user-facing message, or fails with 500
// when err is not something the admin can correct.
func (a *Admin) formFailure(w http.ResponseWriter, r *http.Request, err error, rerender func(status int, csrfToken, msg string)) {
	msg, ok := userMessage(err)
	if !ok {
		a.serverError(w, "saving "+r.URL.Path, err)
		return
	}
	_, csrfToken := a.ensureCSRFToken(w, r)
	rerender(http.StatusUnprocessableEntity, csrfToken, msg)
}

// redirectAfterDelete resets the editor if the deleted record was under edit
// and otherwise keeps the edit open across the redirect.
func redirectAfterDelete[T collection.Record](w http.ResponseWriter, r *http.Request, path string, ed *collection.Editor[T], id string, found bool) {
	if editing := r.FormValue("editing"); editing != "" {
		ed.EditingID = editing
	}
	ed.AfterDelete(id)

	extra := url.Values{}
	if ed.Editing() {
		extra.Set("edit", ed.EditingID)
	}
	notice := ""
	if found {
		notice = "deleted"
	}
	redirectWithNotice(w, r, path, notice, extra)
}

func (a *Admin) renderConfirm(w http.ResponseWriter, r *http.Request, csrfToken, tab, message, action, cancel string) {
	editing := r.URL.Query().Get("editing")
	if editing != "" {
		cancel += "?edit=" + url.QueryEscape(editing)
	}
	a.render(w, http.StatusOK, "confirm.html", confirmData{
		pageHeader: a.header(r, "삭제 확인", tab, csrfToken),
		Message:    message,
		Action:     action,
		CancelURL:  cancel,
		Editing:    editing,
	})
}
