package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"theatre-box-office/internal/models"
	"theatre-box-office/internal/services"
	"theatre-box-office/internal/ticketing"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListPlays(ctx context.Context) ([]models.Play, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Play), args.Error(1)
}

func (m *MockCatalog) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ticket), args.Error(1)
}

func (m *MockCatalog) PlayDetail(ctx context.Context, playID int) (*ticketing.PlayDetail, error) {
	args := m.Called(ctx, playID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticketing.PlayDetail), args.Error(1)
}

func (m *MockCatalog) Snapshot(ctx context.Context) (ticketing.State, error) {
	args := m.Called(ctx)
	return args.Get(0).(ticketing.State), args.Error(1)
}

type MockCheckout struct {
	mock.Mock
}

func (m *MockCheckout) CreateSession(ctx context.Context, items []models.CheckoutItem) (*models.CheckoutSession, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutSession), args.Error(1)
}

type MockDoorList struct {
	mock.Mock
}

func (m *MockDoorList) List(ctx context.Context, eventID *int) ([]models.DoorListRow, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DoorListRow), args.Error(1)
}

type MockPosterUploader struct {
	mock.Mock
}

func (m *MockPosterUploader) UploadPoster(ctx context.Context, playID int, reader io.Reader) ([]services.ImageVariant, error) {
	args := m.Called(ctx, playID, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.ImageVariant), args.Error(1)
}

func catalogState() ticketing.State {
	return ticketing.Loaded(ticketing.NewState(),
		[]models.Play{{ID: 10, Title: "Hamlet", ImageURL: "https://cdn.example.org/hamlet.jpg"}},
		[]models.Ticket{{
			EventID:         1,
			PlayID:          10,
			EventDate:       "2024-03-01",
			StartTime:       "19:30:00",
			AdmissionType:   "General Admission",
			TicketPrice:     decimal.RequireFromString("7.99"),
			ConcessionPrice: decimal.RequireFromString("2.00"),
			Available:       40,
		}},
	)
}

// withURLParam attaches a chi route parameter to the request
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
