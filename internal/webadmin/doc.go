// Package webadmin provides the password-protected administration interface.
//
// # Overview
//
// The admin panel is a set of server-rendered forms, one tab per content family:
//
//   - Menu: create, edit, and delete menu items
//   - Gallery: create, edit, and delete gallery images
//   - News: notices and events, listed by date only
//   - About: the about-page document and its image strip
//   - Settings: home hero text, background image, admin password
//
// # Authentication
//
// Login compares the submitted password with the stored admin secret. A
// successful login sets a signed session cookie without an expiry, so the
// session ends when the browser closes, on logout, or when the server restarts.
//
// # Editing
//
// Each collection tab pairs a list with one edit form. Following an item's
// edit link loads it into the form (?edit=id). Deleting always goes through a
// confirmation page; deleting the record under edit resets the form.
//
// Images may be uploaded (at most 2 MiB, stored inline as data: URLs) or linked
// by URL. An upload wins over a typed URL; leaving both empty keeps the current
// image.
//
// # CSRF Protection
//
// All form submissions require CSRF tokens:
//
//	<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
//
// Tokens are validated on every POST.
//
// # Usage
//
//	admin := webadmin.New(service, sessions, webadmin.Config{SiteName: "Cafe"})
//	admin.RegisterRoutes(router)
package webadmin
