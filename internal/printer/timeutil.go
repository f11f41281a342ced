package printer

import (
	"fmt"
	"time"
)

// TimeAgo returns a short relative time string from now, "-" for unknown times.
func TimeAgo(t time.Time) string { return timeAgo(t, time.Now().UTC()) }

func timeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}

	diff := now.Sub(t.UTC())
	switch {
	case diff < 0:
		return "in the future"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

// FormatTimestamp returns a formatted timestamp string in UTC, "-" for unknown times.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
