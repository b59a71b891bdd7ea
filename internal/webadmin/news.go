// ABOUTME: Admin news tab: notices and events listed by date, with pinning
// ABOUTME: A blank date means today; post images are optional

package webadmin

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/2389/cafesite/internal/collection"
	"github.com/2389/cafesite/internal/content"
)

func (a *Admin) newNewsEditor() *collection.Editor[content.Post] {
	return collection.NewEditor(func() content.Post {
		return content.Post{Category: content.PostNotice, Date: a.service.Today()}
	})
}

func (a *Admin) handleNewsPage(w http.ResponseWriter, r *http.Request) {
	r, csrfToken := a.ensureCSRFToken(w, r)
	a.renderNewsPage(w, r, http.StatusOK, csrfToken, a.newNewsEditor(), "")
}

func (a *Admin) renderNewsPage(w http.ResponseWriter, r *http.Request, status int, csrfToken string, ed *collection.Editor[content.Post], errMsg string) {
	posts, err := a.service.AdminPosts(r.Context())
	if err != nil {
		a.serverError(w, "loading posts", err)
		return
	}

	if !ed.Editing() && errMsg == "" {
		if id := r.URL.Query().Get("edit"); id != "" {
			if post, ok := collection.Find(posts, id); ok {
				ed.Edit(post)
			}
		}
	}

	hdr := a.header(r, "News", "news", csrfToken)
	hdr.Error = errMsg
	a.render(w, status, "news.html", newsPageData{
		pageHeader: hdr,
		Posts:      posts,
		Editor:     ed,
		Categories: postCategoryOptions,
		Today:      a.service.Today(),
	})
}

func (a *Admin) handleNewsSave(w http.ResponseWriter, r *http.Request) {
	if !a.parseMutation(w, r) {
		return
	}

	id := formString(r, "id")
	title := formString(r, "title")
	body := r.FormValue("content")
	date := formString(r, "date")
	pinned := formBool(r, "is_pinned")

	submitted := content.Post{
		ID: id, Title: title, Content: body, Date: date, IsPinned: pinned,
		Category: content.PostCategory(r.FormValue("category")),
	}
	fail := func(err error) {
		ed := a.newNewsEditor()
		ed.Edit(submitted)
		a.formFailure(w, r, err, func(status int, csrfToken, msg string) {
			a.renderNewsPage(w, r, status, csrfToken, ed, msg)
		})
	}

	category, err := parsePostCategory(r.FormValue("category"))
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
		_, err := a.service.CreatePost(r.Context(), collection.PostDraft{
			Title: title, Content: body, Date: date, Category: category,
			ImageURL: submitted.ImageURL, IsPinned: pinned,
		})
		if err != nil {
			fail(err)
			return
		}
		redirectWithNotice(w, r, "/admin/news", "created", nil)
		return
	}

	patch := collection.PostPatch{
		Title: &title, Content: &body, Date: &date, Category: &category, IsPinned: &pinned,
	}
	switch {
	case hasImage:
		patch.ImageURL = &image
	case formBool(r, "remove_image"):
		none := ""
		patch.ImageURL = &none
	}
	_, found, err := a.service.UpdatePost(r.Context(), id, patch)
	if err != nil {
		fail(err)
		return
	}
	if !found {
		redirectWithNotice(w, r, "/admin/news", "", nil)
		return
	}
	redirectWithNotice(w, r, "/admin/news", "updated", nil)
}

func (a *Admin) handleNewsDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	r, csrfToken := a.ensureCSRFToken(w, r)
	id := chi.URLParam(r, "id")

	posts, err := a.service.Store().Posts(r.Context())
	if err != nil {
		a.serverError(w, "loading posts", err)
		return
	}
	post, ok := collection.Find(posts, id)
	if !ok {
		http.Redirect(w, r, "/admin/news", http.StatusSeeOther)
		return
	}

	a.renderConfirm(w, r, csrfToken, "news",
		fmt.Sprintf("'%s' 게시글을 삭제하시겠습니까?", post.Title),
		"/admin/news/"+url.PathEscape(id)+"/delete", "/admin/news")
}

func (a *Admin) handleNewsDelete(w http.ResponseWriter, r *http.Request) {
	if !a.parseMutation(w, r) {
		return
	}
	id := chi.URLParam(r, "id")

	found, err := a.service.DeletePost(r.Context(), id)
	if err != nil {
		a.serverError(w, "deleting post", err)
		return
	}
	redirectAfterDelete(w, r, "/admin/news", a.newNewsEditor(), id, found)
}
