package services

import (
	"context"

	"theatre-box-office/internal/models"
)

// CatalogStore reads plays and ticket slots
type CatalogStore interface {
	ListPlays(ctx context.Context) ([]models.Play, error)
	ListTickets(ctx context.Context) ([]models.Ticket, error)
}

// PlayImageStore records the image reference of a play
type PlayImageStore interface {
	GetPlayByID(ctx context.Context, id int) (*models.Play, error)
	UpdatePlayImage(ctx context.Context, id int, imageURL string) error
}

// DoorListStore reads the door list
type DoorListStore interface {
	List(ctx context.Context, eventID *int) ([]models.DoorListRow, error)
}
