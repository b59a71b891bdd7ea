// ABOUTME: Tests for the admin UI: login, CSRF, per-tab CRUD, delete confirmation, and uploads
// ABOUTME: Drives the chi router with httptest and inspects pages with goquery

package webadmin

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/cafesite/internal/collection"
	"github.com/2389/cafesite/internal/content"
	"github.com/2389/cafesite/internal/media"
	"github.com/2389/cafesite/internal/session"
	"github.com/2389/cafesite/internal/store"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type testAdmin struct {
	t        *testing.T
	handler  http.Handler
	store    *store.ContentStore
	sessions *session.Manager
	cookies  map[string]*http.Cookie
}

func newTestAdmin(t *testing.T) *testAdmin {
	t.Helper()
	cs := store.NewContentStore(store.NewMockBackend())
	n := 0
	svc := collection.NewService(cs,
		collection.WithIDGenerator(func() string { n++; return fmt.Sprintf("new%d", n) }),
		collection.WithClock(func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }),
	)
	signer, err := session.NewSigner([]byte("test-secret"))
	require.NoError(t, err)
	sessions := session.NewManager(signer, cs, time.Hour)

	r := chi.NewRouter()
	New(svc, sessions, Config{SiteName: "Test Cafe"}).RegisterRoutes(r)

	return &testAdmin{t: t, handler: r, store: cs, sessions: sessions, cookies: map[string]*http.Cookie{}}
}

func (ta *testAdmin) do(req *http.Request) *httptest.ResponseRecorder {
	ta.t.Helper()
	for _, c := range ta.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ta.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(ta.cookies, c.Name)
			continue
		}
		ta.cookies[c.Name] = c
	}
	return rec
}

func (ta *testAdmin) get(target string) (*httptest.ResponseRecorder, *goquery.Document) {
	ta.t.Helper()
	rec := ta.do(httptest.NewRequest(http.MethodGet, target, nil))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(ta.t, err)
	return rec, doc
}

func (ta *testAdmin) csrf() string {
	if c, ok := ta.cookies[CSRFCookieName]; ok {
		return c.Value
	}
	ta.get("/admin/login")
	return ta.cookies[CSRFCookieName].Value
}

func (ta *testAdmin) post(target string, form url.Values) *httptest.ResponseRecorder {
	ta.t.Helper()
	if form.Get("csrf_token") == "" {
		form.Set("csrf_token", ta.csrf())
	}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ta.do(req)
}

type upload struct {
	field       string
	contentType string
	data        []byte
}

func (ta *testAdmin) postMultipart(target string, form url.Values, files ...upload) *httptest.ResponseRecorder {
	ta.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	form.Set("csrf_token", ta.csrf())
	for k, vs := range form {
		for _, v := range vs {
			require.NoError(ta.t, mw.WriteField(k, v))
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="upload.bin"`, f.field))
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(ta.t, err)
		_, err = part.Write(f.data)
		require.NoError(ta.t, err)
	}
	require.NoError(ta.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return ta.do(req)
}

func (ta *testAdmin) login() {
	ta.t.Helper()
	rec := ta.post("/admin/login", url.Values{"password": {content.DefaultAdminPassword}})
	require.Equal(ta.t, http.StatusSeeOther, rec.Code)
	require.Contains(ta.t, ta.cookies, SessionCookieName)
}

func rowIDs(doc *goquery.Document, selector string) []string {
	var ids []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("data-id", ""))
	})
	return ids
}

func TestRequireAuth_RedirectsToLogin(t *testing.T) {
	ta := newTestAdmin(t)
	for _, path := range []string{"/admin/", "/admin/menu", "/admin/settings"} {
		rec, _ := ta.get(path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"), path)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	ta := newTestAdmin(t)
	rec := ta.post("/admin/login", url.Values{"password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "비밀번호가 올바르지 않습니다.")
	assert.NotContains(t, ta.cookies, SessionCookieName)
}

func TestLogin_RequiresCSRF(t *testing.T) {
	ta := newTestAdmin(t)
	ta.csrf()
	rec := ta.post("/admin/login", url.Values{"password": {content.DefaultAdminPassword}, "csrf_token": {"forged"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, ta.cookies, SessionCookieName)
}

func TestLogin_SessionCookieHasNoExpiry(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	c := ta.cookies[SessionCookieName]
	assert.True(t, c.Expires.IsZero())
	assert.True(t, c.HttpOnly)

	rec, _ := ta.get("/admin/")
	assert.Equal(t, "/admin/menu", rec.Header().Get("Location"))
}

func TestLogout_EndsSession(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	token := ta.cookies[SessionCookieName].Value

	rec := ta.post("/admin/logout", url.Values{})
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	assert.False(t, ta.sessions.Valid(token))

	// Replaying the old cookie must not get back in
	ta.cookies[SessionCookieName] = &http.Cookie{Name: SessionCookieName, Value: token}
	rec, _ = ta.get("/admin/menu")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestMutations_RejectMissingCSRF(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec := ta.post("/admin/menu", url.Values{"name": {"Mocha"}, "price": {"5000"}, "csrf_token": {"wrong"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	menu, err := ta.store.Menu(context.Background())
	require.NoError(t, err)
	assert.Len(t, menu, len(content.SeedMenu()))
}

func TestMenu_ListsItems(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec, doc := ta.get("/admin/menu")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"m1", "m2", "m3", "m4", "m5"}, rowIDs(doc, ".item-row"))
	assert.Equal(t, "", doc.Find("#menu-form input[name=id]").AttrOr("value", "x"))
	assert.Contains(t, doc.Find(".item-row").First().Text(), "₩ 5,500")
}

func TestMenu_CreatePrepends(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec := ta.post("/admin/menu", url.Values{
		"name": {"Cortado"}, "price": {"4,800"}, "category": {"coffee"}, "is_signature": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/menu?notice=created", rec.Header().Get("Location"))

	menu, err := ta.store.Menu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, len(content.SeedMenu())+1)
	assert.Equal(t, "new1", menu[0].ID)
	assert.Equal(t, 4800, menu[0].Price)
	assert.True(t, menu[0].IsSignature)
	assert.Equal(t, collection.PlaceholderImageURL("new1"), menu[0].ImageURL)

	_, doc := ta.get("/admin/menu?notice=created")
	assert.Equal(t, "추가되었습니다.", strings.TrimSpace(doc.Find(".alert-success").Text()))
}

func TestMenu_CreateInvalidKeepsDraft(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec := ta.post("/admin/menu", url.Values{"name": {"Free Water"}, "price": {"0"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	assert.Contains(t, doc.Find(".alert-error").Text(), "price")
	assert.Equal(t, "Free Water", doc.Find("#menu-form input[name=name]").AttrOr("value", ""))

	menu, err := ta.store.Menu(context.Background())
	require.NoError(t, err)
	assert.Len(t, menu, len(content.SeedMenu()))
}

func TestMenu_EditLoadsItemAndUpdateKeepsImage(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	ctx := context.Background()
	before, err := ta.store.Menu(ctx)
	require.NoError(t, err)

	_, doc := ta.get("/admin/menu?edit=m2")
	assert.Equal(t, "m2", doc.Find("#menu-form input[name=id]").AttrOr("value", ""))
	assert.Equal(t, before[1].Name, doc.Find("#menu-form input[name=name]").AttrOr("value", ""))
	assert.Equal(t, 1, doc.Find(".item-row.editing").Length())

	rec := ta.post("/admin/menu", url.Values{
		"id": {"m2"}, "name": {"Americano"}, "price": {"4200"}, "category": {"coffee"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/menu?notice=updated", rec.Header().Get("Location"))

	after, err := ta.store.Menu(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	assert.Equal(t, "m2", after[1].ID)
	assert.Equal(t, "Americano", after[1].Name)
	assert.Equal(t, before[1].ImageURL, after[1].ImageURL)
}

func TestMenu_UpdateUnknownIDIsNoop(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec := ta.post("/admin/menu", url.Values{"id": {"ghost"}, "name": {"X"}, "price": {"1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/menu", rec.Header().Get("Location"))

	menu, err := ta.store.Menu(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content.SeedMenu(), menu)
}

func TestMenu_DeleteRequiresConfirmation(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()

	rec, doc := ta.get("/admin/menu/m3/delete")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, doc.Find(".confirm-message").Text(), "삭제하시겠습니까?")
	assert.Equal(t, "/admin/menu/m3/delete", doc.Find(".confirm-form").AttrOr("action", ""))

	menu, err := ta.store.Menu(context.Background())
	require.NoError(t, err)
	assert.Len(t, menu, len(content.SeedMenu()), "GET must not delete")

	rec = ta.post("/admin/menu/m3/delete", url.Values{})
	assert.Equal(t, "/admin/menu?notice=deleted", rec.Header().Get("Location"))
	menu, err = ta.store.Menu(context.Background())
	require.NoError(t, err)
	_, found := collection.Find(menu, "m3")
	assert.False(t, found)
}

func TestMenu_DeleteConfirmForMissingItemRedirects(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec, _ := ta.get("/admin/menu/ghost/delete")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/menu", rec.Header().Get("Location"))
}

func TestMenu_DeleteResetsEditorOnlyForEditedItem(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()

	rec := ta.post("/admin/menu/m2/delete", url.Values{"editing": {"m1"}})
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "m1", loc.Query().Get("edit"))

	rec = ta.post("/admin/menu/m1/delete", url.Values{"editing": {"m1"}})
	loc, err = url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Empty(t, loc.Query().Get("edit"))
	assert.Equal(t, "deleted", loc.Query().Get("notice"))
}

func TestMenu_UploadImage(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec := ta.postMultipart("/admin/menu",
		url.Values{"name": {"Scone"}, "price": {"3200"}, "category": {"bakery"}},
		upload{field: "image_file", contentType: "image/png", data: pngHeader},
	)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	menu, err := ta.store.Menu(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(menu[0].ImageURL, "data:image/png;base64,"))

	_, doc := ta.get("/admin/menu?edit=" + menu[0].ID)
	assert.Equal(t, "", doc.Find("#menu-form input[name=image_url]").AttrOr("value", "x"))
	assert.True(t, strings.HasPrefix(doc.Find("#menu-form img.preview").AttrOr("src", ""), "data:image/png"))
}

func TestMenu_UploadRejectsOversizeImage(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	big := append(append([]byte(nil), pngHeader...), make([]byte, media.MaxImageBytes)...)
	rec := ta.postMultipart("/admin/menu",
		url.Values{"name": {"Scone"}, "price": {"3200"}},
		upload{field: "image_file", contentType: "image/png", data: big},
	)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "2MB")

	menu, err := ta.store.Menu(context.Background())
	require.NoError(t, err)
	assert.Len(t, menu, len(content.SeedMenu()))
}

func TestMenu_UploadAcceptsAnyFormat(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`)
	rec := ta.postMultipart("/admin/menu",
		url.Values{"name": {"Scone"}, "price": {"3200"}},
		upload{field: "image_file", contentType: "", data: svg},
	)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	items, err := ta.store.Menu(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(items[0].ImageURL, "data:image/svg+xml;base64,"), items[0].ImageURL)

	rec = ta.postMultipart("/admin/menu",
		url.Values{"name": {"Muffin"}, "price": {"3000"}},
		upload{field: "image_file", contentType: "application/octet-stream", data: []byte("\x00\x00\x00\x18ftypheic")},
	)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	items, err = ta.store.Menu(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(items[0].ImageURL, "data:application/octet-stream;base64,"), items[0].ImageURL)
}

func TestGallery_CreateRequiresImage(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec := ta.post("/admin/gallery", url.Values{"title": {"Terrace"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "image is required")

	rec = ta.post("/admin/gallery", url.Values{"title": {"Terrace"}, "image_url": {"https://example.com/t.jpg"}, "category": {"menu"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	items, err := ta.store.Gallery(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new1", items[0].ID)
	assert.Equal(t, content.GalleryMenu, items[0].Category)
}

func TestGallery_UnknownCategoryRejected(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec := ta.post("/admin/gallery", url.Values{"title": {"T"}, "image_url": {"https://example.com/t.jpg"}, "category": {"outdoor"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "알 수 없는 분류")
}

func TestGallery_DeleteEverythingShowsEmpty(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	for _, id := range []string{"g1", "g2", "g3"} {
		ta.post("/admin/gallery/"+id+"/delete", url.Values{})
	}
	_, doc := ta.get("/admin/gallery")
	assert.Equal(t, 0, doc.Find(".item-card").Length())
	assert.Equal(t, 1, doc.Find(".empty").Length())
}

func TestNews_DateOrderWithoutPinning(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	_, doc := ta.get("/admin/news")
	// p1 is pinned but older, so the admin list puts it second
	assert.Equal(t, []string{"p2", "p1"}, rowIDs(doc, ".item-row"))
	assert.Equal(t, "2024-06-01", doc.Find("#news-form input[name=date]").AttrOr("value", ""))
}

func TestNews_CreateDefaultsDateToToday(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec := ta.post("/admin/news", url.Values{"title": {"Closed Monday"}, "content": {"Maintenance day."}, "date": {""}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	posts, err := ta.store.Posts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", posts[0].Date)
	assert.Equal(t, content.PostNotice, posts[0].Category)
}

func TestNews_CreateRequiresContent(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec := ta.post("/admin/news", url.Values{"title": {"Empty"}, "content": {"   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "content is required")
}

func TestNews_UpdateCanRemoveImage(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec := ta.post("/admin/news", url.Values{
		"id": {"p2"}, "title": {"Spring"}, "content": {"New menu"}, "date": {"2024-03-15"},
		"category": {"event"}, "remove_image": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	posts, err := ta.store.Posts(context.Background())
	require.NoError(t, err)
	p2, ok := collection.Find(posts, "p2")
	require.True(t, ok)
	assert.Empty(t, p2.ImageURL)
	assert.Equal(t, "Spring", p2.Title)
}

func TestAbout_SaveTextAndPhilosophy(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	form := url.Values{
		"hero_title":                    {"Since 2015"},
		"philosophy_item_title_0":       {"Beans"},
		"philosophy_item_description_0": {"Single origin"},
		"caption_a2":                    {"Barista at work"},
		"location_address":              {"Seoul"},
	}
	rec := ta.post("/admin/about", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/about?notice=saved", rec.Header().Get("Location"))

	about, err := ta.store.AboutPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Since 2015", about.Hero.Title)
	require.Len(t, about.Philosophy.Items, content.PhilosophyItemCount)
	assert.Equal(t, "Beans", about.Philosophy.Items[0].Title)
	assert.Equal(t, "Barista at work", about.Gallery.Images[1].Caption)
	assert.Equal(t, content.SeedAboutPage().Hero.ImageURL, about.Hero.ImageURL, "image kept when no new one given")
}

func TestAbout_AddAndRemoveImage(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	ctx := context.Background()

	rec := ta.post("/admin/about/images", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	about, err := ta.store.AboutPage(ctx)
	require.NoError(t, err)
	require.Len(t, about.Gallery.Images, 4)
	last := about.Gallery.Images[3]
	assert.Equal(t, "new1", last.ID)
	assert.Equal(t, collection.NewAboutImageCaption, last.Caption)
	assert.Equal(t, collection.PlaceholderImageURL("about-4"), last.URL)

	_, doc := ta.get("/admin/about/images/a1/delete")
	assert.Equal(t, "/admin/about/images/a1/delete", doc.Find(".confirm-form").AttrOr("action", ""))

	ta.post("/admin/about/images/a1/delete", url.Values{})
	about, err = ta.store.AboutPage(ctx)
	require.NoError(t, err)
	var ids []string
	for _, img := range about.Gallery.Images {
		ids = append(ids, img.ID)
	}
	assert.Equal(t, []string{"a2", "a3", "new1"}, ids)
}

func TestSettings_SaveHero(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()
	rec := ta.post("/admin/settings", url.Values{"hero_title": {"Hello"}, "hero_subtitle": {"World"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	cfg, err := ta.store.SiteConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello", cfg.HeroTitle)
	assert.Equal(t, content.SeedSiteConfig().PhilosophyBackgroundImage, cfg.PhilosophyBackgroundImage)
}

func TestSettings_PasswordChange(t *testing.T) {
	ta := newTestAdmin(t)
	ta.login()

	rec := ta.post("/admin/settings/password", url.Values{"new_password": {"abc"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "최소 4자")

	rec = ta.post("/admin/settings/password", url.Values{"new_password": {"latte"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/settings?notice=password", rec.Header().Get("Location"))

	// The current session survives the change
	rec, _ = ta.get("/admin/settings")
	assert.Equal(t, http.StatusOK, rec.Code)

	fresh := newTestAdminSharing(t, ta)
	rec = fresh.post("/admin/login", url.Values{"password": {content.DefaultAdminPassword}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = fresh.post("/admin/login", url.Values{"password": {"latte"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

// newTestAdminSharing returns a client with an empty cookie jar against the same server.
func newTestAdminSharing(t *testing.T, ta *testAdmin) *testAdmin {
	return &testAdmin{t: t, handler: ta.handler, store: ta.store, sessions: ta.sessions, cookies: map[string]*http.Cookie{}}
}
