// ABOUTME: Admin about tab: the singleton about-page document and its image strip
// ABOUTME: Section images may be uploaded or linked; gallery images are appended and removed individually

package webadmin

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/2389/cafesite/internal/collection"
	"github.com/2389/cafesite/internal/content"
)

func (a *Admin) handleAboutPage(w http.ResponseWriter, r *http.Request) {
	r, csrfToken := a.ensureCSRFToken(w, r)

	about, err := a.service.Store().AboutPage(r.Context())
	if err != nil {
		a.serverError(w, "loading about page", err)
		return
	}
	a.renderAboutPage(w, r, http.StatusOK, csrfToken, about, "")
}

func (a *Admin) renderAboutPage(w http.ResponseWriter, r *http.Request, status int, csrfToken string, about content.AboutPage, errMsg string) {
	hdr := a.header(r, "About", "about", csrfToken)
	hdr.Error = errMsg
	a.render(w, status, "about.html", aboutPageData{pageHeader: hdr, About: about})
}

// aboutImageFields maps each section image to its form field prefix
func aboutImageFields(doc *content.AboutPage) map[string]*string {
	return map[string]*string{
		"hero_image":       &doc.Hero.ImageURL,
		"story_image_main": &doc.Story.ImageMain,
		"story_image_sub":  &doc.Story.ImageSub,
		"location_map":     &doc.Location.MapImage,
	}
}

func (a *Admin) handleAboutSave(w http.ResponseWriter, r *http.Request) {
	if !a.parseMutation(w, r) {
		return
	}

	current, err := a.service.Store().AboutPage(r.Context())
	if err != nil {
		a.serverError(w, "loading about page", err)
		return
	}
	doc := current.Clone()

	doc.Hero.Title = formString(r, "hero_title")
	doc.Hero.Subtitle = formString(r, "hero_subtitle")
	doc.Story.Title = formString(r, "story_title")
	doc.Story.Description1 = formString(r, "story_description1")
	doc.Story.Description2 = formString(r, "story_description2")
	doc.Philosophy.Title = formString(r, "philosophy_title")
	doc.Philosophy.Subtitle = formString(r, "philosophy_subtitle")
	doc.Gallery.Title = formString(r, "gallery_title")
	doc.Gallery.Description = formString(r, "gallery_description")
	doc.Location.Address = formString(r, "location_address")
	doc.Location.SubAddress = formString(r, "location_sub_address")

	items := make([]content.PhilosophyItem, content.PhilosophyItemCount)
	for i := range items {
		n := strconv.Itoa(i)
		items[i] = content.PhilosophyItem{
			Title:       formString(r, "philosophy_item_title_"+n),
			Description: formString(r, "philosophy_item_description_"+n),
		}
	}
	doc.Philosophy.Items = items
	doc.NormalizePhilosophy(content.SeedPhilosophy())

	for i, img := range doc.Gallery.Images {
		if caption, ok := r.Form["caption_"+img.ID]; ok && len(caption) > 0 {
			doc.Gallery.Images[i].Caption = caption[0]
		}
	}

	for field, dst := range aboutImageFields(&doc) {
		src, ok, err := imageField(r, field+"_file", field+"_url")
		if err != nil {
			a.formFailure(w, r, err, func(status int, csrfToken, msg string) {
				a.renderAboutPage(w, r, status, csrfToken, doc, msg)
			})
			return
		}
		if ok {
			*dst = src
		}
	}

	if err := a.service.SaveAboutPage(r.Context(), doc); err != nil {
		a.serverError(w, "saving about page", err)
		return
	}
	redirectWithNotice(w, r, "/admin/about", "saved", nil)
}

func (a *Admin) handleAboutImageAdd(w http.ResponseWriter, r *http.Request) {
	if !a.parseMutation(w, r) {
		return
	}

	current, err := a.service.Store().AboutPage(r.Context())
	if err != nil {
		a.serverError(w, "loading about page", err)
		return
	}

	image, ok, err := imageField(r, "image_file", "image_url")
	if err != nil {
		a.formFailure(w, r, err, func(status int, csrfToken, msg string) {
			a.renderAboutPage(w, r, status, csrfToken, current, msg)
		})
		return
	}
	if !ok {
		image = collection.PlaceholderImageURL("about-" + strconv.Itoa(len(current.Gallery.Images)+1))
	}

	doc, added := a.service.AppendAboutImage(current, image)
	if caption := formString(r, "caption"); caption != "" {
		doc.Gallery.Images[len(doc.Gallery.Images)-1].Caption = caption
	}
	if err := a.service.SaveAboutPage(r.Context(), doc); err != nil {
		a.serverError(w, "saving about page", err)
		return
	}
	a.logger.Info("added about gallery image", "id", added.ID)
	redirectWithNotice(w, r, "/admin/about", "created", nil)
}

func (a *Admin) handleAboutImageDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	r, csrfToken := a.ensureCSRFToken(w, r)
	id := chi.URLParam(r, "id")

	about, err := a.service.Store().AboutPage(r.Context())
	if err != nil {
		a.serverError(w, "loading about page", err)
		return
	}
	img, ok := collection.Find(about.Gallery.Images, id)
	if !ok {
		http.Redirect(w, r, "/admin/about", http.StatusSeeOther)
		return
	}

	a.renderConfirm(w, r, csrfToken, "about",
		fmt.Sprintf("'%s' 이미지를 삭제하시겠습니까?", img.Caption),
		"/admin/about/images/"+url.PathEscape(id)+"/delete", "/admin/about")
}

func (a *Admin) handleAboutImageDelete(w http.ResponseWriter, r *http.Request) {
	if !a.parseMutation(w, r) {
		return
	}
	id := chi.URLParam(r, "id")

	current, err := a.service.Store().AboutPage(r.Context())
	if err != nil {
		a.serverError(w, "loading about page", err)
		return
	}
	doc, found := a.service.RemoveAboutImage(current, id)
	if !found {
		redirectWithNotice(w, r, "/admin/about", "", nil)
		return
	}
	if err := a.service.SaveAboutPage(r.Context(), doc); err != nil {
		a.serverError(w, "saving about page", err)
		return
	}
	redirectWithNotice(w, r, "/admin/about", "deleted", nil)
}
