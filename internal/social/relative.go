package social

import (
	"fmt"
	"time"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

type relativeUnit struct {
	below time.Duration // upper bound for using this unit
	size  time.Duration
	long  string
	short string
}

var relativeUnits = []relativeUnit{
	{time.Hour, time.Minute, "minute", "m"},
	{day, time.Hour, "hour", "h"},
	{week, day, "day", "d"},
	{month, week, "week", "w"},
	{year, month, "month", "mo"},
	{0, year, "year", "y"},
}

// pick returns the unit for an absolute difference of at least a minute.
func pick(abs time.Duration) relativeUnit {
	for _, u := range relativeUnits {
		if u.below == 0 || abs < u.below {
			return u
		}
	}
	return relativeUnits[len(relativeUnits)-1]
}

func wholeUnits(abs, size time.Duration) int64 {
	n := int64(abs / size)
	if n < 1 {
		return 1
	}
	return n
}

// Relative formats t relative to now, e.g. "3 days ago" or "in 2 hours".
func Relative(t, now time.Time) string {
	diff := now.Sub(t)
	past := diff >= 0
	abs := diff
	if !past {
		abs = -diff
	}

	if abs < time.Minute {
		if past {
			return "just now"
		}
		return "in under a minute"
	}

	u := pick(abs)
	n := wholeUnits(abs, u.size)
	label := u.long
	if n != 1 {
		label += "s"
	}
	if past {
		return fmt.Sprintf("%d %s ago", n, label)
	}
	return fmt.Sprintf("in %d %s", n, label)
}

// RelativeShort formats t compactly, e.g. "3d" or "in 2h".
func RelativeShort(t, now time.Time) string {
	diff := now.Sub(t)
	past := diff >= 0
	abs := diff
	if !past {
		abs = -diff
	}

	if abs < time.Minute {
		if past {
			return "now"
		}
		return "in <1m"
	}

	u := pick(abs)
	v := fmt.Sprintf("%d%s", wholeUnits(abs, u.size), u.short)
	if past {
		return v
	}
	return "in " + v
}
