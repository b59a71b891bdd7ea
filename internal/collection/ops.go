// ABOUTME: Generic whole-collection mutations: prepend, replace-by-id, remove-by-id
// ABOUTME: Each returns a new slice and never mutates its input

package collection

// Record is any collection entry with a stable identifier.
type Record interface {
	RecordID() string
}

// Prepend returns a new collection with item first.
func Prepend[T Record](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// Append returns a new collection with item last.
func Append[T Record](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

// Replace returns a new collection where the first record with id is replaced by fn(record).
// found is false when no record matches; every other record is left as is.
func Replace[T Record](items []T, id string, fn func(T) T) (out []T, found bool) {
	out = make([]T, len(items))
	for i, item := range items {
		if !found && item.RecordID() == id {
			out[i] = fn(item)
			found = true
			continue
		}
		out[i] = item
	}
	return out, found
}

// Remove returns a new collection without the record with id.
func Remove[T Record](items []T, id string) (out []T, found bool) {
	out = make([]T, 0, len(items))
	for _, item := range items {
		if item.RecordID() == id {
			found = true
			continue
		}
		out = append(out, item)
	}
	return out, found
}

// Find returns the record with id.
func Find[T Record](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
