// ABOUTME: Calendar date helpers for posts
// ABOUTME: Unparsable dates order before every real date so sorting never fails

package content

import (
	"strings"
	"time"
)

// DateLayout is the canonical post date format.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006.01.02",
	"2006/01/02",
}

// ParseDate parses a post date. The boolean is false when s matched no known
// layout; the time is then the zero value.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// CompareDates orders two post dates oldest first, like time.Time.Compare.
// An unparsable date is earlier than any parsable one, including dates before
// 1970 or in year 0000; two unparsable dates compare equal.
func CompareDates(a, b string) int {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return ta.Compare(tb)
}

// FormatDate renders t in DateLayout using t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
