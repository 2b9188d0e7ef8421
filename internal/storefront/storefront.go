package storefront

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"theatre-box-office/internal/models"
	"theatre-box-office/internal/ticketing"
)

// API is the remote box office
type API interface {
	FetchCatalog(ctx context.Context) (Catalog, error)
	CreateCheckoutSession(ctx context.Context, items []models.CheckoutItem) (*models.CheckoutSession, error)
}

// Storefront owns the client-side ticketing state
type Storefront struct {
	api    API
	logger *zap.Logger

	mu    sync.RWMutex
	state ticketing.State
}

// New creates a storefront with an empty cart and an idle catalog
func New(api API, logger *zap.Logger) *Storefront {
	return &Storefront{
		api:    api,
		logger: logger,
		state:  ticketing.NewState(),
	}
}

// Load fetches the catalog and returns any fetch error. When only one list
// fails it becomes empty and the other is kept; the status is failed only
// when nothing usable came back. The cart is kept either way.
func (s *Storefront) Load(ctx context.Context) error {
	s.mu.Lock()
	s.state = ticketing.Loading(s.state)
	s.mu.Unlock()

	catalog, err := s.api.FetchCatalog(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) || !fetchErr.Partial() {
			s.logger.Warn("catalog fetch failed", zap.Error(err))
			s.state = ticketing.Failed(s.state)
			return err
		}
		s.logger.Warn("catalog partially loaded", zap.Error(err))
	}

	s.state = ticketing.Loaded(s.state, catalog.Plays, catalog.Tickets)
	s.logger.Debug("catalog loaded",
		zap.Int("plays", len(s.state.Plays)),
		zap.Int("tickets", len(s.state.Tickets)))
	return err
}

// AddToCart appends a line for the ticket; the state is unchanged on error
func (s *Storefront) AddToCart(req ticketing.AddTicketRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := ticketing.AddTicket(s.state, req)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// EditQuantity sets the quantity of every line for productID
func (s *Storefront) EditQuantity(productID, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = ticketing.EditQuantity(s.state, productID, qty)
}

// Remove drops every line for productID
func (s *Storefront) Remove(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = ticketing.RemoveTicket(s.state, productID)
}

// State returns a copy of the current state
func (s *Storefront) State() ticketing.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.state
	state.Cart = append([]models.CartItem{}, s.state.Cart...)
	state.Plays = append([]models.Play{}, s.state.Plays...)
	state.Tickets = append([]models.Ticket{}, s.state.Tickets...)
	return state
}

// Cart returns a copy of the cart
func (s *Storefront) Cart() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.CartItem{}, s.state.Cart...)
}

// Status returns the catalog fetch status
func (s *Storefront) Status() models.FetchStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Status
}

// PlayData returns a play with its ticket slots from the loaded catalog
func (s *Storefront) PlayData(playID int) (ticketing.PlayDetail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ticketing.PlayData(s.state, playID)
}

// Checkout sends the cart to the API and returns the payment session
func (s *Storefront) Checkout(ctx context.Context) (*models.CheckoutSession, error) {
	items := ticketing.CheckoutItems(s.Cart())

	session, err := s.api.CreateCheckoutSession(ctx, items)
	if err != nil {
		return nil, err
	}

	s.logger.Info("checkout session created", zap.String("session_id", session.ID))
	return session, nil
}
