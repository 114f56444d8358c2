package utils

import "time"

const displayLayout = "Mon 02 Jan 2006 15:04 MST"

// FormatInZone renders t for humans in loc, falling back to UTC when loc is nil.
func FormatInZone(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(displayLayout)
}
