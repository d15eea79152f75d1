package service

import "time"

// ApplyGate decides whether an edit takes effect synchronously. The
// operationally open window runs from the most recent Sunday 00:00 through
// the upcoming Thursday at the configured cutoff (default 20:40). Edits
// targeting a date inside the window are re-layered immediately; edits
// outside it wait for the next weekly rollover. The clock is injected so
// tests can pin "now".
type ApplyGate struct {
	cutoffHour   int
	cutoffMinute int
	now          func() time.Time
}

// NewApplyGate constructs an apply gate with the given Thursday cutoff.
func NewApplyGate(cutoffHour, cutoffMinute int, now func() time.Time) *ApplyGate {
	if now == nil {
		now = time.Now
	}

	return &ApplyGate{
		cutoffHour:   cutoffHour,
		cutoffMinute: cutoffMinute,
		now:          now,
	}
}

// WithinCurrentWindow reports whether target falls inside the currently
// open window.
func (g *ApplyGate) WithinCurrentWindow(target time.Time) bool {
	now := g.now()
	start := g.windowStart(now)
	end := g.windowEnd(now)

	return !target.Before(start) && !target.After(end)
}

// windowStart is the most recent Sunday at 00:00.
func (g *ApplyGate) windowStart(now time.Time) time.Time {
	d := DateOnly(now)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// windowEnd is the first Thursday cutoff at or after now.
func (g *ApplyGate) windowEnd(now time.Time) time.Time {
	d := DateOnly(now)
	offset := (int(time.Thursday) - int(d.Weekday()) + 7) % 7
	end := d.AddDate(0, 0, offset).
		Add(time.Duration(g.cutoffHour)*time.Hour + time.Duration(g.cutoffMinute)*time.Minute)
	if end.Before(now) {
		end = end.AddDate(0, 0, 7)
	}

	return end
}
