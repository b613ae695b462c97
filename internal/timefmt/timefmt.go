// Package timefmt renders human-relative timestamps for comment views.
package timefmt

import (
	"fmt"
	"time"
)

// Format renders a timestamp relative to now. Timestamps in the future
// are treated as "just now" to tolerate clock skew between the viewer
// and the backend. Ages of a day or more fall back to an absolute date.
func Format(ts, now time.Time) string {
	delta := now.Sub(ts)
	if delta < time.Second {
		return "just now"
	}

	switch {
	case delta < time.Minute:
		return plural(int(delta.Seconds()), "second")
	case delta < time.Hour:
		return plural(int(delta.Minutes()), "minute")
	case delta < 24*time.Hour:
		return plural(int(delta.Hours()), "hour")
	default:
		return ts.Format("Jan 2, 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
