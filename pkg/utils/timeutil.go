package utils

import (
	"time"
)

// DateLayout is the calendar-date format used for every stored date column.
const DateLayout = "2006-01-02"

// Eastern is the US/Eastern location EDGAR timestamps are reported in.
var Eastern *time.Location

func init() {
	var err error
	Eastern, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback: fixed EST if tz database is not available
		Eastern = time.FixedZone("EST", -5*60*60)
	}
}

// ParseSECDate parses the date formats EDGAR uses across its JSON, Atom and
// summary text. The zero time is returned when nothing matches.
func ParseSECDate(s string) time.Time {
	for _, layout := range []string{
		DateLayout,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05-07:00",
		"01/02/2006",
		"01-02-2006",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate formats t as a calendar date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateEastern formats t as the calendar date in US/Eastern.
func FormatDateEastern(t time.Time) string {
	return t.In(Eastern).Format(DateLayout)
}

// DaysAgo returns the calendar date n days before now.
func DaysAgo(now time.Time, n int) string {
	return now.AddDate(0, 0, -n).Format(DateLayout)
}
