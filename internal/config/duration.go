package config

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

var durationPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-z]+)$`)

var durationUnits = map[string]time.Duration{
	"minute": time.Minute, "minutes": time.Minute, "min": time.Minute, "mins": time.Minute, "m": time.Minute,
	"hour": time.Hour, "hours": time.Hour, "hr": time.Hour, "hrs": time.Hour, "h": time.Hour,
	"day": day, "days": day, "d": day,
	"week": week, "weeks": week, "wk": week, "wks": week, "w": week,
	"month": month, "months": month, "mo": month, "mos": month,
	"year": year, "years": year, "yr": year, "yrs": year, "y": year,
}

// ParseDuration parses values like "24 hours", "3d" or "1.5 weeks".
// Matching is case-insensitive and tolerant of surrounding whitespace.
// label prefixes error messages.
func ParseDuration(value, label string) (time.Duration, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	m := durationPattern.FindStringSubmatch(normalized)
	if m == nil {
		return 0, fmt.Errorf("%s %q must match \"<number> <unit>\", e.g. \"24 hours\".", label, value)
	}

	unit, ok := durationUnits[m[2]]
	if !ok {
		return 0, fmt.Errorf("%s has unknown unit %q. Allowed units: %s.", label, m[2], strings.Join(allowedUnits(), ", "))
	}

	magnitude, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, errors.New(label + " has an invalid number.")
	}
	d, ok := millis(magnitude * float64(unit/time.Millisecond))
	if !ok {
		return 0, errors.New(label + " resolved to an invalid duration.")
	}
	return d, nil
}

func allowedUnits() []string {
	units := make([]string, 0, len(durationUnits))
	for u := range durationUnits {
		units = append(units, u)
	}
	sort.Strings(units)
	return units
}

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// millis rounds a millisecond count to the nearest whole millisecond.
// It reports false when the count does not fit in a time.Duration.
func millis(ms float64) (time.Duration, bool) {
	rounded := math.Round(ms)
	if math.IsNaN(rounded) || math.Abs(rounded) > float64(maxMillis) {
		return 0, false
	}
	return time.Duration(rounded) * time.Millisecond, true
}
