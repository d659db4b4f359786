// Package cron evaluates 5-field cron expressions at day granularity to place
// job markers on a calendar. It is not a scheduler: minute and hour fields
// are parsed but never evaluated, and nothing here executes anything.
package cron

import (
	"strconv"
	"strings"
	"time"
)

// MatchesField reports whether value satisfies one cron field. Supported
// forms: "*", comma-separated alternatives, inclusive ranges "a-b", steps
// "base/step" (base "*" resolves to min), and bare numbers. Malformed
// alternatives simply never match; no error is raised and value is not
// validated against [min, max].
func MatchesField(value int, field string, min, max int) bool {
	if field == "*" {
		return true
	}
	for _, part := range strings.Split(field, ",") {
		switch {
		case strings.Contains(part, "-"):
			bounds := strings.SplitN(part, "-", 2)
			start, err1 := strconv.Atoi(bounds[0])
			end, err2 := strconv.Atoi(bounds[1])
			if err1 != nil || err2 != nil {
				continue
			}
			if value >= start && value <= end {
				return true
			}
		case strings.Contains(part, "/"):
			halves := strings.SplitN(part, "/", 2)
			step, err := strconv.Atoi(halves[1])
			if err != nil || step == 0 {
				continue
			}
			base := min
			if halves[0] != "*" {
				base, err = strconv.Atoi(halves[0])
				if err != nil {
					continue
				}
			}
			if (value-base)%step == 0 && value >= base {
				return true
			}
		default:
			if n, err := strconv.Atoi(part); err == nil && n == value {
				return true
			}
		}
	}
	return false
}

// NextOccurrences walks the next horizonDays calendar days starting at now
// (inclusive) and returns the ISO dates on which the expression fires,
// ascending, at most maxCount of them. An expression with fewer than five
// whitespace-separated fields yields no occurrences.
//
// Day-level only: a day is included when the day-of-month, month and
// day-of-week fields all match. The minute and hour fields are ignored.
func NextOccurrences(expr string, horizonDays, maxCount int, now time.Time) []string {
	fields := strings.Fields(expr)
	if len(fields) < 5 {
		return nil
	}
	dayOfMonth, month, dayOfWeek := fields[2], fields[3], fields[4]

	var dates []string
	for i := 0; i < horizonDays && len(dates) < maxCount; i++ {
		d := now.AddDate(0, 0, i)
		if MatchesField(d.Day(), dayOfMonth, 1, 31) &&
			MatchesField(int(d.Month()), month, 1, 12) &&
			MatchesField(int(d.Weekday()), dayOfWeek, 0, 6) {
			dates = append(dates, d.Format("2006-01-02"))
		}
	}
	return dates
}
