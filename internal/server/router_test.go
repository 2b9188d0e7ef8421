package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"theatre-box-office/internal/middleware"
	"theatre-box-office/internal/models"
	"theatre-box-office/internal/ticketing"
	"theatre-box-office/internal/utils"
)

type stubCatalog struct{ state ticketing.State }

func (s stubCatalog) ListPlays(context.Context) ([]models.Play, error) { return s.state.Plays, nil }
func (s stubCatalog) ListTickets(context.Context) ([]models.Ticket, error) {
	return s.state.Tickets, nil
}
func (s stubCatalog) Snapshot(context.Context) (ticketing.State, error) { return s.state, nil }
func (s stubCatalog) PlayDetail(_ context.Context, id int) (*ticketing.PlayDetail, error) {
	d, ok := ticketing.PlayData(s.state, id)
	if !ok {
		return nil, models.ErrPlayNotFound
	}
	return &d, nil
}

type stubCheckout struct{ calls [][]models.CheckoutItem }

func (s *stubCheckout) CreateSession(_ context.Context, items []models.CheckoutItem) (*models.CheckoutSession, error) {
	s.calls = append(s.calls, items)
	if len(items) == 0 {
		return nil, models.ErrEmptyCart
	}
	return &models.CheckoutSession{ID: "cs_test_router"}, nil
}

type stubDoorList struct{ err error }

func (s stubDoorList) List(context.Context, *int) ([]models.DoorListRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.DoorListRow{{"name": "Ada"}}, nil
}

func testState() ticketing.State {
	return ticketing.Loaded(ticketing.NewState(),
		[]models.Play{{ID: 10, Title: "Hamlet"}},
		[]models.Ticket{{
			EventID:         1,
			PlayID:          10,
			EventDate:       "2024-03-01",
			StartTime:       "19:30:00",
			AdmissionType:   "General Admission",
			TicketPrice:     decimal.RequireFromString("7.99"),
			ConcessionPrice: decimal.RequireFromString("2.00"),
		}},
	)
}

func newTestServer(t *testing.T, deps Dependencies) (*httptest.Server, *http.Client) {
	t.Helper()

	if deps.Catalog == nil {
		deps.Catalog = stubCatalog{state: testState()}
	}
	if deps.Checkout == nil {
		deps.Checkout = &stubCheckout{}
	}
	if deps.DoorList == nil {
		deps.DoorList = stubDoorList{}
	}
	deps.Sessions = sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	deps.Logger = zap.NewNop()
	deps.CORSOrigins = []string{"http://localhost:3000"}

	srv := httptest.NewServer(NewRouter(deps))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func send(t *testing.T, client *http.Client, method, url, body string, headers ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_SessionCartCheckout(t *testing.T) {
	checkout := &stubCheckout{}
	srv, client := newTestServer(t, Dependencies{Checkout: checkout})

	resp := send(t, client, http.MethodPost, srv.URL+"/api/cart/items", `{"id":1,"qty":3}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = send(t, client, http.MethodPatch, srv.URL+"/api/cart/items/1", `{"qty":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, client, http.MethodPost, srv.URL+"/api/cart/checkout", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, checkout.calls, 1)
	require.Len(t, checkout.calls[0], 1)
	assert.Equal(t, "Hamlet Tickets", checkout.calls[0][0].Name)
	assert.Equal(t, 2, checkout.calls[0][0].Quantity)
}

func TestRouter_PublicRoutes(t *testing.T) {
	srv, client := newTestServer(t, Dependencies{})

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/plays", http.StatusOK},
		{http.MethodGet, "/api/plays/10", http.StatusOK},
		{http.MethodGet, "/api/plays/11", http.StatusNotFound},
		{http.MethodGet, "/api/tickets", http.StatusOK},
		{http.MethodGet, "/api/cart", http.StatusOK},
		{http.MethodGet, "/api/doorlist", http.StatusOK},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
		{http.MethodPut, "/api/plays", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp := send(t, client, tt.method, srv.URL+tt.path, "")
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_DoorListFailure(t *testing.T) {
	srv, client := newTestServer(t, Dependencies{DoorList: stubDoorList{err: errors.New("view missing")}})

	resp := send(t, client, http.MethodGet, srv.URL+"/api/doorlist", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestRouter_StaffRoutes(t *testing.T) {
	hash, err := utils.HashTokenWithParams("front-of-house", utils.TokenHashParams{
		Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16,
	})
	require.NoError(t, err)

	srv, client := newTestServer(t, Dependencies{StaffHash: hash})

	resp := send(t, client, http.MethodGet, srv.URL+"/api/doorlist", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = send(t, client, http.MethodGet, srv.URL+"/api/doorlist", "", "Authorization", "Bearer front-of-house")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// public routes stay open
	resp = send(t, client, http.MethodGet, srv.URL+"/api/plays", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_CheckoutRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	srv, client := newTestServer(t, Dependencies{CheckoutRate: limiter})

	body := `[{"name":"Hamlet Ticket","unitPrice":7.99,"quantity":1}]`
	resp := send(t, client, http.MethodPost, srv.URL+"/api/checkout", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, client, http.MethodPost, srv.URL+"/api/checkout", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv, client := newTestServer(t, Dependencies{})

	resp := send(t, client, http.MethodOptions, srv.URL+"/api/checkout", "",
		"Origin", "http://localhost:3000",
		"Access-Control-Request-Method", "POST")

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}
