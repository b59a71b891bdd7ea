// ABOUTME: Editor tracks which record an admin form is editing and the draft being typed
// ABOUTME: Deleting the record under edit resets the form to a blank draft

package collection

// Editor is the state of one admin edit form.
type Editor[T Record] struct {
	EditingID string
	Draft     T
	blank     func() T
}

// NewEditor returns an editor showing a blank draft.
func NewEditor[T Record](blank func() T) *Editor[T] {
	e := &Editor[T]{blank: blank}
	e.Reset()
	return e
}

// Edit loads item into the form.
func (e *Editor[T]) Edit(item T) {
	e.EditingID = item.RecordID()
	e.Draft = item
}

// Editing reports whether an existing record is loaded.
func (e *Editor[T]) Editing() bool {
	return e.EditingID != ""
}

// Reset clears the form back to a blank draft.
func (e *Editor[T]) Reset() {
	e.EditingID = ""
	if e.blank != nil {
		e.Draft = e.blank()
	} else {
		var zero T
		e.Draft = zero
	}
}

// AfterDelete resets the form if id was the record being edited.
func (e *Editor[T]) AfterDelete(id string) {
	if e.EditingID != "" && e.EditingID == id {
		e.Reset()
	}
}
