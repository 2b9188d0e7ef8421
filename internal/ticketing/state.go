// Package ticketing holds the cart/catalog state transitions of the storefront.
//
// Every operation takes a State by value and returns a new one; the cart slice of
// the result never aliases the input's, so callers can keep old states around.
package ticketing

import (
	"theatre-box-office/internal/models"
)

// State is the storefront's application state: the catalog, its fetch status and the cart
type State struct {
	Cart    []models.CartItem  `json:"cart"`
	Plays   []models.Play      `json:"plays"`
	Tickets []models.Ticket    `json:"tickets"`
	Status  models.FetchStatus `json:"status"`
}

// NewState returns an empty, idle state
func NewState() State {
	return State{
		Cart:    []models.CartItem{},
		Plays:   []models.Play{},
		Tickets: []models.Ticket{},
		Status:  models.StatusIdle,
	}
}

// Loading marks a catalog fetch as in flight
func Loading(s State) State {
	s.Status = models.StatusLoading
	return s
}

// Loaded stores a fetched catalog. A nil list is kept as an empty one.
func Loaded(s State, plays []models.Play, tickets []models.Ticket) State {
	s.Status = models.StatusSuccess
	s.Plays = nonNil(plays)
	s.Tickets = nonNil(tickets)
	return s
}

// Failed records a failed catalog fetch; the catalog lists are emptied
func Failed(s State) State {
	s.Status = models.StatusFailed
	s.Plays = []models.Play{}
	s.Tickets = []models.Ticket{}
	return s
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func cloneCart(cart []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(cart), len(cart)+1)
	copy(out, cart)
	return out
}
