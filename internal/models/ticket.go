package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is a purchasable admission slot for a play
type Ticket struct {
	EventID         int             `json:"eventid" db:"eventid"`
	PlayID          int             `json:"playid" db:"playid"`
	EventDate       string          `json:"eventdate" db:"eventdate"` // ISO date, optionally with a time part
	StartTime       string          `json:"starttime" db:"starttime"` // 24h "15:04:05"
	AdmissionType   string          `json:"admission_type" db:"admission_type"`
	TicketPrice     decimal.Decimal `json:"ticket_price" db:"ticket_price"`
	ConcessionPrice decimal.Decimal `json:"concession_price" db:"concession_price"`
	Available       int             `json:"available" db:"available"`
}

// Date combines the calendar day of EventDate with StartTime.
// ok is false when either part cannot be parsed.
func (t Ticket) Date() (date time.Time, ok bool) {
	day := t.EventDate
	if i := strings.IndexByte(day, 'T'); i >= 0 {
		day = day[:i]
	}

	start := t.StartTime
	if len(start) == len("15:04") {
		start += ":00"
	}

	parsed, err := time.Parse("2006-01-02T15:04:05", day+"T"+start)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// Day parses only the calendar day of EventDate
func (t Ticket) Day() (time.Time, bool) {
	day := t.EventDate
	if i := strings.IndexByte(day, 'T'); i >= 0 {
		day = day[:i]
	}
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
