package services

import (
	"context"
	"fmt"
	"strings"

	"theatre-box-office/internal/models"
	"theatre-box-office/internal/ticketing"
)

// CatalogService serves the play and ticket catalog
type CatalogService struct {
	store   CatalogStore
	storage StorageService
}

// NewCatalogService creates a new catalog service. storage may be nil, in which
// case image references are returned as stored.
func NewCatalogService(store CatalogStore, storage StorageService) *CatalogService {
	return &CatalogService{
		store:   store,
		storage: storage,
	}
}

// ListPlays returns all plays with image references resolved to URLs
func (s *CatalogService) ListPlays(ctx context.Context) ([]models.Play, error) {
	plays, err := s.store.ListPlays(ctx)
	if err != nil {
		return nil, err
	}

	for i := range plays {
		plays[i].ImageURL = s.resolveImage(plays[i].ImageURL)
	}
	return plays, nil
}

// ListTickets returns all ticket slots
func (s *CatalogService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return s.store.ListTickets(ctx)
}

// Snapshot loads the whole catalog into a fresh ticketing state
func (s *CatalogService) Snapshot(ctx context.Context) (ticketing.State, error) {
	plays, err := s.ListPlays(ctx)
	if err != nil {
		return ticketing.Failed(ticketing.NewState()), fmt.Errorf("failed to load plays: %w", err)
	}

	tickets, err := s.ListTickets(ctx)
	if err != nil {
		return ticketing.Failed(ticketing.NewState()), fmt.Errorf("failed to load tickets: %w", err)
	}

	return ticketing.Loaded(ticketing.NewState(), plays, tickets), nil
}

// PlayDetail returns a play with its ticket slots
func (s *CatalogService) PlayDetail(ctx context.Context, playID int) (*ticketing.PlayDetail, error) {
	state, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	detail, ok := ticketing.PlayData(state, playID)
	if !ok {
		return nil, fmt.Errorf("play %d: %w", playID, models.ErrPlayNotFound)
	}
	return &detail, nil
}

func (s *CatalogService) resolveImage(ref string) string {
	if ref == "" || s.storage == nil {
		return ref
	}
	if !isStorageKey(ref) {
		return ref
	}
	return s.storage.GetURL(ref)
}

// isStorageKey reports whether an image reference names an object in storage
// rather than an absolute URL or a path on the API host
func isStorageKey(ref string) bool {
	if ref == "" {
		return false
	}
	return !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") && !strings.HasPrefix(ref, "/")
}
