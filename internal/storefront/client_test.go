package storefront

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theatre-box-office/internal/models"
)

func newAPI(t *testing.T, routes map[string]http.HandlerFunc) *Client {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL+"/", 2*time.Second)
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestClient_FetchCatalog(t *testing.T) {
	client := newAPI(t, map[string]http.HandlerFunc{
		"/api/plays": respond(http.StatusOK, `[{"id":10,"title":"Hamlet","description":"The Dane.","image_url":"h.jpg"}]`),
		"/api/tickets": respond(http.StatusOK, `[{"eventid":1,"playid":10,"eventdate":"2024-03-01","starttime":"19:30:00",
			"admission_type":"General Admission","ticket_price":7.99,"concession_price":"2.00","available":40}]`),
	})

	catalog, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)

	require.Len(t, catalog.Plays, 1)
	assert.Equal(t, "Hamlet", catalog.Plays[0].Title)
	require.Len(t, catalog.Tickets, 1)
	assert.True(t, decimal.RequireFromString("7.99").Equal(catalog.Tickets[0].TicketPrice))
	assert.True(t, decimal.RequireFromString("2").Equal(catalog.Tickets[0].ConcessionPrice))
}

func TestClient_FetchCatalog_NullLists(t *testing.T) {
	client := newAPI(t, map[string]http.HandlerFunc{
		"/api/plays":   respond(http.StatusOK, `null`),
		"/api/tickets": respond(http.StatusOK, ``),
	})

	catalog, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, catalog.Plays)
	assert.Empty(t, catalog.Plays)
	assert.NotNil(t, catalog.Tickets)
	assert.Empty(t, catalog.Tickets)
}

const (
	hamletJSON  = `[{"id":10,"title":"Hamlet","description":"The Dane.","image_url":"h.jpg"}]`
	matineeJSON = `[{"eventid":1,"playid":10,"eventdate":"2024-03-01","starttime":"14:00:00","ticket_price":5}]`
)

func TestClient_FetchCatalog_Failures(t *testing.T) {
	tests := []struct {
		name         string
		plays        http.HandlerFunc
		tickets      http.HandlerFunc
		wantPlays    int
		wantTickets  int
		playsFailed  bool
		ticketFailed bool
	}{
		{
			name:        "plays server error",
			plays:       respond(http.StatusInternalServerError, `{"error":"db down"}`),
			tickets:     respond(http.StatusOK, matineeJSON),
			wantTickets: 1,
			playsFailed: true,
		},
		{
			name:         "tickets not json",
			plays:        respond(http.StatusOK, hamletJSON),
			tickets:      respond(http.StatusOK, `not json`),
			wantPlays:    1,
			ticketFailed: true,
		},
		{
			name:         "tickets truncated",
			plays:        respond(http.StatusOK, hamletJSON),
			tickets:      respond(http.StatusOK, `[{"eventid":`),
			wantPlays:    1,
			ticketFailed: true,
		},
		{
			name:        "plays wrong shape",
			plays:       respond(http.StatusOK, `{"plays":[]}`),
			tickets:     respond(http.StatusOK, matineeJSON),
			wantTickets: 1,
			playsFailed: true,
		},
		{
			name:         "both fail",
			plays:        respond(http.StatusServiceUnavailable, ``),
			tickets:      respond(http.StatusOK, `{`),
			playsFailed:  true,
			ticketFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newAPI(t, map[string]http.HandlerFunc{
				"/api/plays":   tt.plays,
				"/api/tickets": tt.tickets,
			})

			catalog, err := client.FetchCatalog(context.Background())

			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, tt.playsFailed, fetchErr.Plays != nil)
			assert.Equal(t, tt.ticketFailed, fetchErr.Tickets != nil)
			assert.Equal(t, !(tt.playsFailed && tt.ticketFailed), fetchErr.Partial())

			assert.NotNil(t, catalog.Plays)
			assert.NotNil(t, catalog.Tickets)
			assert.Len(t, catalog.Plays, tt.wantPlays)
			assert.Len(t, catalog.Tickets, tt.wantTickets)
		})
	}
}

func TestClient_FetchCatalog_APIError(t *testing.T) {
	client := newAPI(t, map[string]http.HandlerFunc{
		"/api/plays":   respond(http.StatusInternalServerError, `{"error":"db down"}`),
		"/api/tickets": respond(http.StatusBadGateway, `upstream`),
	})

	_, err := client.FetchCatalog(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "db down")
	assert.Contains(t, err.Error(), "502")
}

func TestClient_FetchCatalog_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL, time.Second).FetchCatalog(context.Background())
	assert.Error(t, err)
}

func TestClient_CreateCheckoutSession(t *testing.T) {
	var received []models.CheckoutItem
	client := newAPI(t, map[string]http.HandlerFunc{
		"/api/checkout": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			respond(http.StatusOK, `{"id":"cs_test_1","url":"https://checkout.example/cs_test_1"}`)(w, r)
		},
	})

	session, err := client.CreateCheckoutSession(context.Background(), []models.CheckoutItem{
		{Name: "Hamlet Tickets", Description: "General Admission", UnitPrice: decimal.RequireFromString("7.99"), Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)

	require.Len(t, received, 1)
	assert.Equal(t, "7.99", received[0].UnitPrice.String())
	assert.Equal(t, 2, received[0].Quantity)
}

func TestClient_CreateCheckoutSession_Rejected(t *testing.T) {
	client := newAPI(t, map[string]http.HandlerFunc{
		"/api/checkout": respond(http.StatusBadRequest, `{"error":"cart is empty"}`),
	})

	_, err := client.CreateCheckoutSession(context.Background(), nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "cart is empty", apiErr.Message)
}
