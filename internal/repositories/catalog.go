package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"theatre-box-office/internal/models"
)

// CatalogRepository handles play and ticket slot data operations
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListPlays returns every play ordered by title
func (r *CatalogRepository) ListPlays(ctx context.Context) ([]models.Play, error) {
	query := `
		SELECT id, title, description, image_url
		FROM plays
		ORDER BY title ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plays: %w", err)
	}
	defer rows.Close()

	plays := []models.Play{}
	for rows.Next() {
		var p models.Play
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan play: %w", err)
		}
		plays = append(plays, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plays: %w", err)
	}

	return plays, nil
}

// GetPlayByID retrieves a play by id
func (r *CatalogRepository) GetPlayByID(ctx context.Context, id int) (*models.Play, error) {
	query := `
		SELECT id, title, description, image_url
		FROM plays
		WHERE id = $1`

	var p models.Play
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("play %d: %w", id, models.ErrPlayNotFound)
		}
		return nil, fmt.Errorf("failed to get play: %w", err)
	}

	return &p, nil
}

// UpdatePlayImage stores the image reference of a play
func (r *CatalogRepository) UpdatePlayImage(ctx context.Context, id int, imageURL string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE plays SET image_url = $1 WHERE id = $2`, imageURL, id)
	if err != nil {
		return fmt.Errorf("failed to update play image: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("play %d: %w", id, models.ErrPlayNotFound)
	}

	return nil
}

// ListTickets returns every ticket slot in date order
func (r *CatalogRepository) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	query := `
		SELECT eventid, playid, to_char(eventdate, 'YYYY-MM-DD'), to_char(starttime, 'HH24:MI:SS'),
		       admission_type, ticket_price, concession_price, available
		FROM tickets
		ORDER BY eventdate ASC, starttime ASC, eventid ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	tickets := []models.Ticket{}
	for rows.Next() {
		var t models.Ticket
		err := rows.Scan(
			&t.EventID,
			&t.PlayID,
			&t.EventDate,
			&t.StartTime,
			&t.AdmissionType,
			&t.TicketPrice,
			&t.ConcessionPrice,
			&t.Available,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}

// CreatePlay inserts a play and sets its id
func (r *CatalogRepository) CreatePlay(ctx context.Context, play *models.Play) error {
	query := `
		INSERT INTO plays (title, description, image_url)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, play.Title, play.Description, play.ImageURL).Scan(&play.ID)
	if err != nil {
		return fmt.Errorf("failed to create play: %w", err)
	}
	return nil
}

// CreateTicket inserts a ticket slot and sets its event id
func (r *CatalogRepository) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	if _, ok := ticket.Date(); !ok {
		return fmt.Errorf("ticket date %q %q: %w", ticket.EventDate, ticket.StartTime, models.ErrInvalidInput)
	}

	query := `
		INSERT INTO tickets (playid, eventdate, starttime, admission_type, ticket_price, concession_price, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING eventid`

	err := r.db.QueryRowContext(ctx, query,
		ticket.PlayID,
		ticket.EventDate,
		ticket.StartTime,
		ticket.AdmissionType,
		ticket.TicketPrice,
		ticket.ConcessionPrice,
		ticket.Available,
	).Scan(&ticket.EventID)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}
