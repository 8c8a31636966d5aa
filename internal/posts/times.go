package posts

import (
	"strings"
	"time"
)

// fileTimes are the filesystem timestamps used when front matter has no date.
type fileTimes struct {
	Birth    time.Time
	HasBirth bool
	Modified time.Time
}

func (ft fileTimes) created() (time.Time, bool) {
	if ft.HasBirth && !ft.Birth.IsZero() {
		return ft.Birth, true
	}
	if !ft.Modified.IsZero() {
		return ft.Modified, true
	}
	return time.Time{}, false
}

var zonedLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var dateLayouts = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseTimestamp parses the timestamp forms authors put in front matter.
// Dates without a time are UTC midnight; times without a zone are local.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t the way the tracker stores timestamps.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}
