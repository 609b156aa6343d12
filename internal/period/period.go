// Package period provides billing-period date arithmetic.
package period

import (
	"fmt"
	"strings"
	"time"
)

// DaysInclusive counts the days from start to end, both included.
func DaysInclusive(start, end time.Time) int {
	return int(dateOnly(end).Sub(dateOnly(start)).Hours()/24) + 1
}

// EndDate adds supplyDays to start.
func EndDate(start time.Time, supplyDays int) time.Time {
	return start.AddDate(0, 0, supplyDays)
}

// MonthsBetween counts the calendar months touched by start..end inclusive,
// so 20 Mar to 10 Apr is two months. It returns 0 when either date is zero.
func MonthsBetween(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return (end.Year()-start.Year())*12 + int(end.Month()-start.Month()) + 1
}

// billDateLayouts are the date formats seen on retailer bills.
var billDateLayouts = []string{
	"2 Jan 2006",
	"2-Jan-2006",
	"2/Jan/2006",
	"2 Jan 06",
	"2 1 2006",
	"2-1-2006",
	"2/1/2006",
	"02012006",
	"2 January 2006",
	"2-January-2006",
	time.DateOnly,
}

// ParseBillDate parses a date in any of the formats retailers print.
func ParseBillDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range billDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised bill date %q", s)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
