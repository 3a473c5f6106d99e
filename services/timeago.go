// Package services: services/timeago.go
package services

import (
	"fmt"
	"time"
)

// Allow tests to pin the current time.
var nowFunc = time.Now

// TimeAgo formats a past timestamp as a coarse age bucket relative to now.
// Buckets: under a minute, minutes, hours, then days; singular only when
// the count is exactly one. Operates on the instant difference, so no
// timezone adjustment applies.
func TimeAgo(t time.Time) string {
	return timeAgoAt(t, nowFunc())
}

func timeAgoAt(t, now time.Time) string {
	seconds := int(now.Sub(t).Seconds())
	if seconds < 60 {
		return "just now"
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	}
	days := hours / 24
	return fmt.Sprintf("%d day%s ago", days, plural(days))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
