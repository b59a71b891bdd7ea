// ABOUTME: Admin settings tab: home hero text, philosophy background, and the admin password
// ABOUTME: Password changes keep existing sessions open

package webadmin

import (
	"net/http"

	"github.com/2389/cafesite/internal/content"
)

func (a *Admin) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	r, csrfToken := a.ensureCSRFToken(w, r)

	cfg, err := a.service.Store().SiteConfig(r.Context())
	if err != nil {
		a.serverError(w, "loading site config", err)
		return
	}
	a.renderSettingsPage(w, r, http.StatusOK, csrfToken, cfg, "")
}

func (a *Admin) renderSettingsPage(w http.ResponseWriter, r *http.Request, status int, csrfToken string, cfg content.SiteConfig, errMsg string) {
	hdr := a.header(r, "Settings", "settings", csrfToken)
	hdr.Error = errMsg
	a.render(w, status, "settings.html", settingsPageData{pageHeader: hdr, Config: cfg})
}

func (a *Admin) handleSettingsSave(w http.ResponseWriter, r *http.Request) {
	if !a.parseMutation(w, r) {
		return
	}

	cfg, err := a.service.Store().SiteConfig(r.Context())
	if err != nil {
		a.serverError(w, "loading site config", err)
		return
	}
	cfg.HeroTitle = formString(r, "hero_title")
	cfg.HeroSubtitle = formString(r, "hero_subtitle")

	image, ok, err := imageField(r, "background_file", "background_url")
	if err != nil {
		a.formFailure(w, r, err, func(status int, csrfToken, msg string) {
			a.renderSettingsPage(w, r, status, csrfToken, cfg, msg)
		})
		return
	}
	if ok {
		cfg.PhilosophyBackgroundImage = image
	}

	if err := a.service.SaveSiteConfig(r.Context(), cfg); err != nil {
		a.serverError(w, "saving site config", err)
		return
	}
	redirectWithNotice(w, r, "/admin/settings", "saved", nil)
}

func (a *Admin) handlePasswordChange(w http.ResponseWriter, r *http.Request) {
	if !a.parseMutation(w, r) {
		return
	}

	if err := a.service.ChangePassword(r.Context(), r.FormValue("new_password")); err != nil {
		cfg, loadErr := a.service.Store().SiteConfig(r.Context())
		if loadErr != nil {
			a.serverError(w, "loading site config", loadErr)
			return
		}
		a.formFailure(w, r, err, func(status int, csrfToken, msg string) {
			a.renderSettingsPage(w, r, status, csrfToken, cfg, msg)
		})
		return
	}
	redirectWithNotice(w, r, "/admin/settings", "password", nil)
}
