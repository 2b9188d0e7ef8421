package ticketing

import (
	"time"

	"github.com/shopspring/decimal"

	"theatre-box-office/internal/models"
)

// PlayTicket is a ticket slot with its date and start time combined
type PlayTicket struct {
	EventID         int             `json:"eventid"`
	PlayID          int             `json:"playid"`
	AdmissionType   string          `json:"admission_type"`
	Date            time.Time       `json:"date"`
	TicketPrice     decimal.Decimal `json:"ticket_price"`
	ConcessionPrice decimal.Decimal `json:"concession_price"`
	Available       int             `json:"available"`
}

// PlayDetail is a play together with its bookable slots
type PlayDetail struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	Tickets     []PlayTicket `json:"tickets"`
}

// PlayData returns the play with its tickets, or false when the play is unknown.
// Tickets whose date cannot be parsed carry a zero Date.
func PlayData(s State, playID int) (PlayDetail, bool) {
	play, ok := FindPlay(s.Plays, playID)
	if !ok {
		return PlayDetail{}, false
	}

	detail := PlayDetail{
		Title:       play.Title,
		Description: play.Description,
		ImageURL:    play.ImageURL,
		Tickets:     []PlayTicket{},
	}

	for _, t := range s.Tickets {
		if t.PlayID != playID {
			continue
		}
		date, _ := t.Date()
		detail.Tickets = append(detail.Tickets, PlayTicket{
			EventID:         t.EventID,
			PlayID:          t.PlayID,
			AdmissionType:   t.AdmissionType,
			Date:            date,
			TicketPrice:     t.TicketPrice,
			ConcessionPrice: t.ConcessionPrice,
			Available:       t.Available,
		})
	}

	return detail, true
}

// CheckoutItems maps the cart to checkout lines
func CheckoutItems(cart []models.CartItem) []models.CheckoutItem {
	items := make([]models.CheckoutItem, 0, len(cart))
	for _, item := range cart {
		items = append(items, models.CheckoutItemFromCart(item))
	}
	return items
}
