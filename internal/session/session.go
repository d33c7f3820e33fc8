package session

import (
	"fmt"
	"time"
)

// Session is the authenticated state: an opaque access token and the
// absolute instant it stops being usable. A session past its expiry is
// treated everywhere as absent.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

func (s Session) Valid(now time.Time) bool {
	return s.Token != "" && now.Before(s.ExpiresAt)
}

func (s Session) Remaining(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}

// FormatRemaining renders a countdown as M:SS, or "Expired" once the
// remaining time reaches zero.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "Expired"
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
