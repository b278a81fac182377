package srs

import "time"

// Clock supplies the current instant and the timezone whose calendar defines
// "today".
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// SystemClock reads the wall clock.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock returns a wall clock for loc. A nil loc means UTC.
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return &SystemClock{loc: loc}
}

// Now returns the current time.
func (c *SystemClock) Now() time.Time { return time.Now().In(c.loc) }

// Location returns the clock's timezone.
func (c *SystemClock) Location() *time.Location { return c.loc }

// FixedClock always returns the same instant. It is used to pin "today" in
// tests and tools.
type FixedClock struct {
	T   time.Time
	Loc *time.Location
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T.In(c.Location()) }

// Location returns the clock's timezone, UTC when unset.
func (c FixedClock) Location() *time.Location {
	if c.Loc == nil {
		return time.UTC
	}
	return c.Loc
}

// DateOf returns the calendar date of t in loc, as midnight UTC. Dates are
// carried in this form so they compare and round-trip through DATE columns
// independently of the server timezone.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NowAndToday reads the clock once and returns the instant together with its
// calendar date. Callers use it once per operation so a request spanning
// midnight works against a single "today".
func NowAndToday(c Clock) (now time.Time, today time.Time) {
	now = c.Now()
	return now, DateOf(now, c.Location())
}

// ParseTimezone loads an IANA timezone name. An empty name means UTC.
func ParseTimezone(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
