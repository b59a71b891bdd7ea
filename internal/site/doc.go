// Package site serves the cafe's public pages.
//
// Routes:
//
//	GET /             hero, signature items, philosophy banner
//	GET /menu         ?category=coffee|beverage|bakery|brunch &view=N
//	GET /gallery      ?view=N
//	GET /about        ?view=N (about-page gallery)
//	GET /news         ?category=notice|event
//	GET /news/{id}    post detail, body rendered as Markdown
//	GET /static/*     stylesheet and lightbox script
//
// Lightboxes are server-rendered: the view parameter restores a
// carousel.Controller and the page links to the next, previous, and closed
// states. A small script maps carousel.KeyBindings and backdrop clicks onto
// those links, so all three gallery surfaces share one binding table.
package site
