package tz

import (
	"fmt"
	"strings"
	"time"

	"bannerbot/internal/domain"
)

// Layout is the only accepted timestamp format, both for operator input and
// for rendering stored deadlines.
const Layout = "2006-01-02 15:04:05"

// EventOffsetHours is the clock used for events, which are entered once
// against the Asia server regardless of the configured offsets.
const EventOffsetHours = 8

// Fixed returns the zone UTC+offsetHours.
func Fixed(offsetHours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
}

// ToUTC parses local as a wall-clock time at UTC+offsetHours and returns the
// corresponding UTC instant.
func ToUTC(local string, offsetHours int) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(local), Fixed(offsetHours))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidTimestamp, local)
	}
	return t.UTC(), nil
}

// FormatUTC renders t in Layout, in UTC.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Remaining is the time left before a deadline, broken down for display.
type Remaining struct {
	Expired bool
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// TotalSeconds folds the breakdown back into seconds.
func (r Remaining) TotalSeconds() int64 {
	return r.Days*86400 + r.Hours*3600 + r.Minutes*60 + r.Seconds
}

// RemainingUntil returns the time left from now to deadline, or an expired
// value when deadline is not after now.
func RemainingUntil(deadline, now time.Time) Remaining {
	if !deadline.After(now) {
		return Remaining{Expired: true}
	}
	total := int64(deadline.Sub(now) / time.Second)
	return Remaining{
		Days:    total / 86400,
		Hours:   (total % 86400) / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}
