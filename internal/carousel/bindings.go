// ABOUTME: Input bindings for the carousel: keyboard keys, explicit controls, backdrop clicks
// ABOUTME: Every surface routes input through the same table so the UX stays identical

package carousel

// Action is a carousel transition triggered by user input.
type Action string

// Carousel actions.
const (
	ActionNext  Action = "next"
	ActionPrev  Action = "prev"
	ActionClose Action = "close"
)

// KeyBindings maps keyboard key names (as reported by KeyboardEvent.key) to actions.
var KeyBindings = map[string]Action{
	"ArrowRight": ActionNext,
	"ArrowLeft":  ActionPrev,
	"Escape":     ActionClose,
}

// Apply performs action. Unknown actions and actions on a closed carousel do nothing.
func (c *Controller) Apply(action Action) {
	switch action {
	case ActionNext:
		c.Next()
	case ActionPrev:
		c.Prev()
	case ActionClose:
		c.Close()
	}
}

// HandleKey applies the action bound to key while the carousel is open.
// It reports whether the key was consumed.
func (c *Controller) HandleKey(key string) bool {
	if !c.open {
		return false
	}
	action, ok := KeyBindings[key]
	if !ok {
		return false
	}
	c.Apply(action)
	return true
}

// HandleBackdrop closes the carousel when the click landed on the backdrop
// rather than on the image or a control.
func (c *Controller) HandleBackdrop(onBackdrop bool) {
	if onBackdrop {
		c.Close()
	}
}
