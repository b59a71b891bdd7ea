// Package carousel implements the lightbox state machine used by the about
// gallery, the gallery page, and the menu detail browser.
//
// A Controller is either closed or open at an index in [0, N). Next and Prev
// wrap around; with N = 0 the controller cannot open and Next/Prev are no-ops.
// When the list shrinks under an open controller, SetLen clamps the index to
// the last item or closes if nothing is left. Restore rebuilds a controller
// from an index recorded against an older list and applies the same rule.
//
// Input is routed through HandleKey (KeyBindings: ArrowLeft, ArrowRight,
// Escape) and HandleBackdrop so every surface behaves the same way.
package carousel
