package ticketing

import (
	"fmt"

	"theatre-box-office/internal/models"
)

// AddTicketRequest selects a ticket slot for the cart
type AddTicketRequest struct {
	ID          int  `json:"id"`
	Qty         int  `json:"qty"`
	Concessions bool `json:"concessions"`
}

// AddTicket appends a line for the requested ticket. Identical lines are not merged.
// When the ticket or its play is missing the state is returned unchanged with
// ErrTicketNotFound or ErrPlayNotFound.
func AddTicket(s State, req AddTicketRequest) (State, error) {
	ticket, ok := FindTicket(s.Tickets, req.ID)
	if !ok {
		return s, fmt.Errorf("ticket %d: %w", req.ID, models.ErrTicketNotFound)
	}

	play, ok := FindPlay(s.Plays, ticket.PlayID)
	if !ok {
		return s, fmt.Errorf("play %d for ticket %d: %w", ticket.PlayID, req.ID, models.ErrPlayNotFound)
	}

	item := NewCartItem(ticket, play, req.Qty)
	if req.Concessions {
		item = ApplyConcession(ticket.ConcessionPrice, item)
	}

	s.Cart = append(cloneCart(s.Cart), item)
	return s, nil
}

// EditQuantity sets the quantity of every line with the given product id.
// Non-positive quantities are stored as zero; lines are never removed here.
func EditQuantity(s State, productID, qty int) State {
	cart := cloneCart(s.Cart)
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Qty = clampQty(qty)
		}
	}
	s.Cart = cart
	return s
}

// RemoveTicket drops every line with the given product id
func RemoveTicket(s State, productID int) State {
	cart := make([]models.CartItem, 0, len(s.Cart))
	for _, item := range s.Cart {
		if item.ProductID != productID {
			cart = append(cart, item)
		}
	}
	s.Cart = cart
	return s
}
