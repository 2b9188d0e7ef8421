package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"theatre-box-office/internal/models"
)

// DoorListRepository reads the door list view
type DoorListRepository struct {
	db *sql.DB
}

// NewDoorListRepository creates a new door list repository
func NewDoorListRepository(db *sql.DB) *DoorListRepository {
	return &DoorListRepository{db: db}
}

// List returns the door list, optionally restricted to one ticket slot.
// Rows keep whatever columns the view defines.
func (r *DoorListRepository) List(ctx context.Context, eventID *int) ([]models.DoorListRow, error) {
	query := "SELECT * FROM exdoorlist"
	var args []any
	if eventID != nil {
		query += " WHERE eventid = $1"
		args = append(args, *eventID)
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query door list: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read door list columns: %w", err)
	}

	list := []models.DoorListRow{}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan door list row: %w", err)
		}

		row := make(models.DoorListRow, len(columns))
		for i, column := range columns {
			// lib/pq hands back text-like columns (numeric, time) as bytes
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
				continue
			}
			row[column] = values[i]
		}
		list = append(list, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate door list: %w", err)
	}

	return list, nil
}

// DoorListEntry is one party expected at the door
type DoorListEntry struct {
	EventID      int
	CustomerID   int
	Name         string
	VIP          bool
	DonorBadge   bool
	SeatingAccom bool
	NumTickets   int
}

// Add puts a party on the door list for a ticket slot
func (r *DoorListRepository) Add(ctx context.Context, entry DoorListEntry) error {
	query := `
		INSERT INTO door_list (eventid, custid, name, vip, donorbadge, seatingaccom, num_tickets)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		entry.EventID,
		entry.CustomerID,
		entry.Name,
		entry.VIP,
		entry.DonorBadge,
		entry.SeatingAccom,
		entry.NumTickets,
	)
	if err != nil {
		return fmt.Errorf("failed to add %s to door list: %w", entry.Name, err)
	}
	return nil
}
