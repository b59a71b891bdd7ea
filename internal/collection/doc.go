// Package collection implements the editing rules for the cafe's content lists.
//
// Every mutation reads a whole collection from the content store, derives the
// next collection, and writes it back:
//
//   - create: validate, assign a fresh id, prepend
//   - update: shallow-merge set fields, keep the id
//   - delete: remove by id; an absent id writes nothing
//
// Ordering is applied at read time. The public news page shows pinned posts
// first and then newest first; the admin listing sorts by date only. Dates
// that do not parse sort as the Unix epoch.
package collection
