// ABOUTME: Template-facing snapshot of a carousel and a scroll flag for server-rendered pages
// ABOUTME: Links for next, prev and close are derived from the controller, never recomputed in markup

package carousel

// ScrollFlag is a ScrollLocker that records whether scrolling is suppressed.
// Pages render it as a class on the document body.
type ScrollFlag struct {
	locked int
}

// LockScroll marks background scrolling as suppressed.
func (f *ScrollFlag) LockScroll() { f.locked++ }

// UnlockScroll restores background scrolling.
func (f *ScrollFlag) UnlockScroll() {
	if f.locked > 0 {
		f.locked--
	}
}

// Locked reports whether any carousel still holds the lock.
func (f *ScrollFlag) Locked() bool { return f.locked > 0 }

var _ ScrollLocker = (*ScrollFlag)(nil)

// View is what a template needs to draw a lightbox.
type View struct {
	Open  bool
	Index int
	Prev  int
	Next  int
	Count int
	// Position is the 1-based index for "3 / 7" counters.
	Position int
}

// View snapshots the controller for rendering.
func (c *Controller) View() View {
	v := View{Count: c.n}
	if i, ok := c.Index(); ok {
		v.Open = true
		v.Index = i
		v.Prev = c.PeekPrev()
		v.Next = c.PeekNext()
		v.Position = i + 1
	}
	return v
}
