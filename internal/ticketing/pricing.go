package ticketing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"theatre-box-office/internal/models"
)

const (
	concessionNameSuffix = " + Concessions"
	concessionDescSuffix = " with concessions ticket"
)

// toPartialCartItem derives the ticket-owned fields of a cart line
func toPartialCartItem(t models.Ticket) models.CartItem {
	date := t.EventDate
	if day, ok := t.Day(); ok {
		date = DayMonthDate(day)
	}

	return models.CartItem{
		ProductID: t.EventID,
		Price:     t.TicketPrice,
		Desc:      fmt.Sprintf("%s - %s, %s", t.AdmissionType, date, MilitaryToCivilian(t.StartTime)),
	}
}

// NewCartItem combines a ticket and its play into a cart line
func NewCartItem(ticket models.Ticket, play models.Play, qty int) models.CartItem {
	item := toPartialCartItem(ticket)

	item.Name = play.Title + " Ticket"
	if qty > 1 {
		item.Name += "s"
	}
	item.Qty = clampQty(qty)
	item.ProductImgURL = play.ImageURL

	return item
}

// ApplyConcession adds the concession surcharge to a cart line
func ApplyConcession(concessionPrice decimal.Decimal, item models.CartItem) models.CartItem {
	item.Name += concessionNameSuffix
	item.Price = item.Price.Add(concessionPrice)
	item.Desc += concessionDescSuffix
	return item
}

// CartTotal sums price × qty over the cart
func CartTotal(cart []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range cart {
		total = total.Add(item.Subtotal())
	}
	return total
}

func clampQty(qty int) int {
	if qty > 0 {
		return qty
	}
	return 0
}
