package handlers

import (
	"context"
	"io"

	"theatre-box-office/internal/models"
	"theatre-box-office/internal/services"
	"theatre-box-office/internal/ticketing"
)

// CatalogProvider is the catalog as the HTTP layer sees it
type CatalogProvider interface {
	ListPlays(ctx context.Context) ([]models.Play, error)
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	PlayDetail(ctx context.Context, playID int) (*ticketing.PlayDetail, error)
	Snapshot(ctx context.Context) (ticketing.State, error)
}

// CheckoutCreator opens hosted payment sessions
type CheckoutCreator interface {
	CreateSession(ctx context.Context, items []models.CheckoutItem) (*models.CheckoutSession, error)
}

// PosterUploader stores play posters
type PosterUploader interface {
	UploadPoster(ctx context.Context, playID int, reader io.Reader) ([]services.ImageVariant, error)
}

var (
	_ CatalogProvider = (*services.CatalogService)(nil)
	_ CheckoutCreator = (*services.CheckoutService)(nil)
	_ PosterUploader  = (*services.PlayImageService)(nil)
)
