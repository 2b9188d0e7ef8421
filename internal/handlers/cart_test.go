package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"theatre-box-office/internal/models"
)

type cartClient struct {
	t       *testing.T
	handler *CartHandler
	cookies []*http.Cookie
}

func newCartClient(t *testing.T, catalog *MockCatalog, checkout *MockCheckout) *cartClient {
	store := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	return &cartClient{
		t:       t,
		handler: NewCartHandler(catalog, checkout, store, zap.NewNop()),
	}
}

func (c *cartClient) do(h http.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	if len(params) == 2 {
		req = withURLParam(req, params[0], params[1])
	}

	rr := httptest.NewRecorder()
	h(rr, req)

	if cookies := rr.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return rr
}

func decodeCart(t *testing.T, rr *httptest.ResponseRecorder) CartResponse {
	t.Helper()

	var cart CartResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cart))
	return cart
}

func TestCartHandler_EmptyCart(t *testing.T) {
	c := newCartClient(t, &MockCatalog{}, &MockCheckout{})

	rr := c.do(c.handler.GetCart, http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"items":[],"total":0}`, rr.Body.String())
}

func TestCartHandler_Flow(t *testing.T) {
	catalog := &MockCatalog{}
	catalog.On("Snapshot", mock.Anything).Return(catalogState(), nil)
	c := newCartClient(t, catalog, &MockCheckout{})

	rr := c.do(c.handler.AddItem, http.MethodPost, "/api/cart/items", `{"id":1,"qty":2,"concessions":true}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	cart := decodeCart(t, rr)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Hamlet Tickets + Concessions", cart.Items[0].Name)
	assert.Equal(t, "9.99", cart.Items[0].Price.String())
	assert.Equal(t, "19.98", cart.Total.String())

	// the cart survives in the cookie
	rr = c.do(c.handler.GetCart, http.MethodGet, "/api/cart", "")
	assert.Len(t, decodeCart(t, rr).Items, 1)

	rr = c.do(c.handler.UpdateItem, http.MethodPatch, "/api/cart/items/1", `{"qty":-4}`, "id", "1")
	require.Equal(t, http.StatusOK, rr.Code)
	cart = decodeCart(t, rr)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 0, cart.Items[0].Qty)
	assert.True(t, cart.Total.IsZero())

	rr = c.do(c.handler.RemoveItem, http.MethodDelete, "/api/cart/items/1", "", "id", "1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeCart(t, rr).Items)
}

func TestCartHandler_AddItem_Errors(t *testing.T) {
	catalog := &MockCatalog{}
	catalog.On("Snapshot", mock.Anything).Return(catalogState(), nil)
	c := newCartClient(t, catalog, &MockCheckout{})

	rr := c.do(c.handler.AddItem, http.MethodPost, "/api/cart/items", `{"id":404,"qty":1}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = c.do(c.handler.AddItem, http.MethodPost, "/api/cart/items", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = c.do(c.handler.UpdateItem, http.MethodPatch, "/api/cart/items/1", `{}`, "id", "1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = c.do(c.handler.RemoveItem, http.MethodDelete, "/api/cart/items/x", "", "id", "x")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCartHandler_Checkout(t *testing.T) {
	catalog := &MockCatalog{}
	catalog.On("Snapshot", mock.Anything).Return(catalogState(), nil)
	checkout := &MockCheckout{}
	c := newCartClient(t, catalog, checkout)

	checkout.On("CreateSession", mock.Anything, []models.CheckoutItem{}).Return(nil, models.ErrEmptyCart).Once()
	rr := c.do(c.handler.Checkout, http.MethodPost, "/api/cart/checkout", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	c.do(c.handler.AddItem, http.MethodPost, "/api/cart/items", `{"id":1,"qty":1}`)

	checkout.On("CreateSession", mock.Anything, mock.MatchedBy(func(items []models.CheckoutItem) bool {
		return len(items) == 1 &&
			items[0].Name == "Hamlet Ticket" &&
			items[0].Description == "General Admission - Fri, Mar 1, 7:30 PM" &&
			items[0].Quantity == 1
	})).Return(&models.CheckoutSession{ID: "cs_test_9"}, nil).Once()

	rr = c.do(c.handler.Checkout, http.MethodPost, "/api/cart/checkout", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":"cs_test_9"}`, rr.Body.String())

	// checkout does not clear the cart
	rr = c.do(c.handler.GetCart, http.MethodGet, "/api/cart", "")
	assert.Len(t, decodeCart(t, rr).Items, 1)

	rr = c.do(c.handler.Clear, http.MethodDelete, "/api/cart", "")
	assert.Empty(t, decodeCart(t, rr).Items)
	checkout.AssertExpectations(t)
}

func TestCartHandler_TamperedCookie(t *testing.T) {
	c := newCartClient(t, &MockCatalog{}, &MockCheckout{})
	c.cookies = []*http.Cookie{{Name: sessionName, Value: "forged"}}

	rr := c.do(c.handler.GetCart, http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeCart(t, rr).Items)
}
