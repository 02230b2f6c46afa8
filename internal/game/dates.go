package game

import "time"

const dateLayout = "2006-01-02"

// DateString converts epoch milliseconds to a UTC calendar date. The whole
// pond runs on one fixed reference clock, so UTC everywhere.
func DateString(millis int64) string {
	return time.UnixMilli(millis).UTC().Format(dateLayout)
}

// IsResetDue reports whether the day window that started at lastResetMillis
// has elapsed: true iff the two timestamps fall on different calendar dates.
func IsResetDue(lastResetMillis int64, now time.Time) bool {
	return DateString(lastResetMillis) != DateString(now.UnixMilli())
}

// DaysBetween returns the whole days from one YYYY-MM-DD date to another.
// An unparsable date falls back to the epoch day, which always reads as
// maximally overdue; flagging someone too eagerly beats silently skipping them.
func DaysBetween(from, to string) int {
	d1, err := time.Parse(dateLayout, from)
	if err != nil {
		d1 = time.Unix(0, 0).UTC()
	}
	d2, err := time.Parse(dateLayout, to)
	if err != nil {
		d2 = time.Unix(0, 0).UTC()
	}
	return int(d2.Sub(d1).Hours() / 24)
}
