package ticketing

import (
	"time"
)

// DayMonthDate renders a calendar day as "Sat, May 1"
func DayMonthDate(t time.Time) string {
	return t.Format("Mon, Jan 2")
}

// MilitaryToCivilian turns "19:30:00" or "19:30" into "7:30 PM".
// Unparseable input is returned unchanged.
func MilitaryToCivilian(clock string) string {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return t.Format("3:04 PM")
		}
	}
	return clock
}
