// ABOUTME: Circular-index lightbox state machine shared by every gallery surface
// ABOUTME: States are closed or open(i) with 0 <= i < N; next/prev wrap and N = 0 never opens

package carousel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned when opening a carousel with no items.
	ErrEmpty = errors.New("carousel has no items")
	// ErrOutOfRange is returned when opening at an index outside [0, N).
	ErrOutOfRange = errors.New("carousel index out of range")
)

// ScrollLocker suppresses and restores background scrolling while a carousel is open.
type ScrollLocker interface {
	LockScroll()
	UnlockScroll()
}

// Controller tracks one carousel over a list of N items.
// A Controller is not safe for concurrent use; each surface owns its own.
type Controller struct {
	n      int
	index  int
	open   bool
	scroll ScrollLocker
}

// Option configures a Controller.
type Option func(*Controller)

// WithScrollLocker installs the hook notified when the carousel opens and closes.
func WithScrollLocker(l ScrollLocker) Option {
	return func(c *Controller) { c.scroll = l }
}

// New returns a closed controller over n items.
func New(n int, opts ...Option) *Controller {
	if n < 0 {
		n = 0
	}
	c := &Controller{n: n}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the current item count.
func (c *Controller) Len() int { return c.n }

// IsOpen reports whether an item is being shown.
func (c *Controller) IsOpen() bool { return c.open }

// Index returns the shown index; ok is false while closed.
func (c *Controller) Index() (index int, ok bool) {
	if !c.open {
		return 0, false
	}
	return c.index, true
}

// Open shows item i.
func (c *Controller) Open(i int) error {
	if c.n == 0 {
		return ErrEmpty
	}
	if i < 0 || i >= c.n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, c.n)
	}
	wasOpen := c.open
	c.index = i
	c.open = true
	if !wasOpen && c.scroll != nil {
		c.scroll.LockScroll()
	}
	return nil
}

// Close hides the carousel. Closing a closed carousel does nothing.
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.open = false
	c.index = 0
	if c.scroll != nil {
		c.scroll.UnlockScroll()
	}
}

// Next advances to the following item, wrapping from last to first.
func (c *Controller) Next() {
	if !c.open || c.n == 0 {
		return
	}
	c.index = (c.index + 1) % c.n
}

// Prev moves to the previous item, wrapping from first to last.
func (c *Controller) Prev() {
	if !c.open || c.n == 0 {
		return
	}
	c.index = (c.index - 1 + c.n) % c.n
}

// PeekNext returns the index Next would move to without moving.
func (c *Controller) PeekNext() int {
	if c.n == 0 {
		return 0
	}
	return (c.index + 1) % c.n
}

// PeekPrev returns the index Prev would move to without moving.
func (c *Controller) PeekPrev() int {
	if c.n == 0 {
		return 0
	}
	return (c.index - 1 + c.n) % c.n
}

// SetLen updates the item count after the underlying list changed.
// An open carousel closes when the list becomes empty and otherwise clamps
// its index to the last item.
func (c *Controller) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	if !c.open {
		return
	}
	if n == 0 {
		c.Close()
		return
	}
	if c.index >= n {
		c.index = n - 1
	}
}

// Restore rebuilds a controller from a serialized index such as a query
// parameter. An empty or malformed value yields a closed controller. The index
// was recorded against a list that may have shrunk since, so it is opened
// against the recorded position and then run through SetLen.
func Restore(n int, raw string, opts ...Option) *Controller {
	c := New(n, opts...)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return c
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i == math.MaxInt {
		return c
	}
	c.n = max(c.n, i+1)
	_ = c.Open(i)
	c.SetLen(n)
	return c
}
