// file: services/timeago_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo_Buckets(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"fresh", 30 * time.Second, "just now"},
		{"edge of a minute", 59 * time.Second, "just now"},
		{"one minute", 90 * time.Second, "1 minute ago"},
		{"several minutes", 5 * time.Minute, "5 minutes ago"},
		{"edge of an hour", 59*time.Minute + 59*time.Second, "59 minutes ago"},
		{"one hour", 60 * time.Minute, "1 hour ago"},
		{"several hours", 3 * time.Hour, "3 hours ago"},
		{"edge of a day", 23*time.Hour + 59*time.Minute, "23 hours ago"},
		{"one day", 24 * time.Hour, "1 day ago"},
		{"several days", 2 * 24 * time.Hour, "2 days ago"},
		{"weeks stay in days", 40 * 24 * time.Hour, "40 days ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, timeAgoAt(now.Add(-tc.age), now))
		})
	}
}

func TestTimeAgo_UsesInjectedClock(t *testing.T) {
	fixed := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	old := nowFunc
	nowFunc = func() time.Time { return fixed }
	defer func() { nowFunc = old }()

	assert.Equal(t, "2 hours ago", TimeAgo(fixed.Add(-2*time.Hour)))
}
