package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"theatre-box-office/internal/models"
	"theatre-box-office/internal/ticketing"
)

const (
	sessionName = "box-office"
	cartKey     = "cart"

	// maxCartLines keeps the encoded cart well inside the 4KB cookie limit
	maxCartLines = 100
)

// CartResponse is the session cart with its running total
type CartResponse struct {
	Items []models.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

type quantityRequest struct {
	Qty *int `json:"qty"`
}

// cartLine is what the session stores for one cart entry. Names and prices are
// derived from the catalog on every request.
type cartLine struct {
	ID          int
	Added       int // quantity when added; picks "Ticket" or "Tickets"
	Qty         int
	Concessions bool
}

// CartHandler keeps a visitor's cart in their session cookie
type CartHandler struct {
	catalog  CatalogProvider
	checkout CheckoutCreator
	store    sessions.Store
	logger   *zap.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(catalog CatalogProvider, checkout CheckoutCreator, store sessions.Store, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		catalog:  catalog,
		checkout: checkout,
		store:    store,
		logger:   logger,
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	_, state, _, err := h.current(r)
	if err != nil {
		h.catalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(state.Cart))
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req ticketing.AddTicketRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart item")
		return
	}

	session, lines := h.load(r)
	if len(lines) >= maxCartLines {
		err := fmt.Errorf("cart holds at most %d lines: %w", maxCartLines, models.ErrInvalidInput)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshot, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		h.catalogError(w, err)
		return
	}
	state, lines := h.price(snapshot, lines)

	state, err = ticketing.AddTicket(state, req)
	if err != nil {
		status := statusFor(err)
		writeError(w, status, messageFor(err, status))
		return
	}

	added := state.Cart[len(state.Cart)-1]
	lines = append(lines, cartLine{ID: req.ID, Added: req.Qty, Qty: added.Qty, Concessions: req.Concessions})
	h.save(w, r, session, lines, state.Cart, http.StatusCreated)
}

// UpdateItem handles PATCH /api/cart/items/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req quantityRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Qty == nil {
		writeError(w, http.StatusBadRequest, "qty is required")
		return
	}

	session, state, lines, err := h.current(r)
	if err != nil {
		h.catalogError(w, err)
		return
	}

	state = ticketing.EditQuantity(state, productID, *req.Qty)
	for i := range lines {
		lines[i].Qty = state.Cart[i].Qty
	}
	h.save(w, r, session, lines, state.Cart, http.StatusOK)
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	session, state, lines, err := h.current(r)
	if err != nil {
		h.catalogError(w, err)
		return
	}

	state = ticketing.RemoveTicket(state, productID)
	kept := make([]cartLine, 0, len(lines))
	for _, line := range lines {
		if line.ID != productID {
			kept = append(kept, line)
		}
	}
	h.save(w, r, session, kept, state.Cart, http.StatusOK)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, _ := h.load(r)
	h.save(w, r, session, nil, []models.CartItem{}, http.StatusOK)
}

// Checkout handles POST /api/cart/checkout. The cart is kept until payment completes.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	_, state, _, err := h.current(r)
	if err != nil {
		h.catalogError(w, err)
		return
	}
	createSession(w, r, h.checkout, h.logger, ticketing.CheckoutItems(state.Cart))
}

// load returns the visitor's session and stored lines. An unreadable cookie starts a fresh cart.
func (h *CartHandler) load(r *http.Request) (*sessions.Session, []cartLine) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		h.logger.Warn("discarding unreadable cart session", zap.Error(err))
	}

	raw, ok := session.Values[cartKey].(string)
	if !ok {
		return session, []cartLine{}
	}

	lines, err := decodeLines(raw)
	if err != nil {
		h.logger.Warn("discarding malformed cart", zap.Error(err))
		return session, []cartLine{}
	}
	return session, lines
}

// current loads the stored lines and prices them against the catalog.
// An empty cart does not touch the catalog.
func (h *CartHandler) current(r *http.Request) (*sessions.Session, ticketing.State, []cartLine, error) {
	session, lines := h.load(r)
	if len(lines) == 0 {
		return session, ticketing.NewState(), lines, nil
	}

	snapshot, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		return session, ticketing.NewState(), nil, err
	}
	state, lines := h.price(snapshot, lines)
	return session, state, lines, nil
}

// price rebuilds the cart from the stored lines. Lines whose ticket or play has
// left the catalog are dropped; the returned lines stay aligned with state.Cart.
func (h *CartHandler) price(state ticketing.State, lines []cartLine) (ticketing.State, []cartLine) {
	state.Cart = []models.CartItem{}
	kept := make([]cartLine, 0, len(lines))

	for _, line := range lines {
		next, err := ticketing.AddTicket(state, ticketing.AddTicketRequest{
			ID:          line.ID,
			Qty:         line.Added,
			Concessions: line.Concessions,
		})
		if err != nil {
			h.logger.Warn("dropping cart line missing from catalog", zap.Int("ticket_id", line.ID), zap.Error(err))
			continue
		}
		next.Cart[len(next.Cart)-1].Qty = max(line.Qty, 0)
		state = next
		kept = append(kept, line)
	}
	return state, kept
}

func (h *CartHandler) save(w http.ResponseWriter, r *http.Request, session *sessions.Session, lines []cartLine, cart []models.CartItem, status int) {
	session.Values[cartKey] = encodeLines(lines)
	if err := session.Save(r, w); err != nil {
		h.logger.Error("failed to save cart session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, status, cartResponse(cart))
}

func (h *CartHandler) catalogError(w http.ResponseWriter, err error) {
	h.logger.Error("failed to load catalog for cart", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "failed to load catalog")
}

func cartResponse(cart []models.CartItem) CartResponse {
	if cart == nil {
		cart = []models.CartItem{}
	}
	return CartResponse{Items: cart, Total: ticketing.CartTotal(cart)}
}

// encodeLines writes lines as "id:added:qty[:c]" joined by commas
func encodeLines(lines []cartLine) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		part := strconv.Itoa(line.ID) + ":" + strconv.Itoa(line.Added) + ":" + strconv.Itoa(line.Qty)
		if line.Concessions {
			part += ":c"
		}
		parts[i] = part
	}
	return strings.Join(parts, ",")
}

func decodeLines(raw string) ([]cartLine, error) {
	if raw == "" {
		return []cartLine{}, nil
	}

	fields := strings.Split(raw, ",")
	lines := make([]cartLine, 0, len(fields))
	for _, field := range fields {
		parts := strings.Split(field, ":")
		if len(parts) < 3 || len(parts) > 4 || (len(parts) == 4 && parts[3] != "c") {
			return nil, fmt.Errorf("malformed cart line %q", field)
		}

		var nums [3]int
		for i := range nums {
			n, err := strconv.Atoi(parts[i])
			if err != nil {
				return nil, fmt.Errorf("malformed cart line %q: %w", field, err)
			}
			nums[i] = n
		}
		lines = append(lines, cartLine{ID: nums[0], Added: nums[1], Qty: nums[2], Concessions: len(parts) == 4})
	}
	return lines, nil
}
