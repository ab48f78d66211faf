package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

type SeatRepository struct {
	db *sql.DB
}

func NewSeatRepository(db *sql.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

func (r *SeatRepository) FindSeat(ctx context.Context, seatID int64) (*domain.Seat, error) {
	query := `
	SELECT id, seat_number, event_id, status
	FROM seats
	WHERE id = $1
	`

	var seat domain.Seat
	err := r.db.QueryRowContext(ctx, query, seatID).Scan(
		&seat.ID,
		&seat.SeatNumber,
		&seat.EventID,
		&seat.Status,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSeatNotFound
		}

		return nil, err
	}

	return &seat, nil
}

func (r *SeatRepository) FindAvailableSeats(ctx context.Context, eventID int64) ([]domain.Seat, error) {
	query := `
	SELECT id, seat_number, event_id, status
	FROM seats
	WHERE event_id = $1 AND status = 'AVAILABLE'
	ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var seats []domain.Seat
	for rows.Next() {
		var seat domain.Seat
		if err := rows.Scan(
			&seat.ID,
			&seat.SeatNumber,
			&seat.EventID,
			&seat.Status,
		); err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

// SaveSeat persists the seat status. A SOLD row is never moved back to
// another status.
func (r *SeatRepository) SaveSeat(ctx context.Context, seat *domain.Seat) error {
	query := `
	UPDATE seats
	SET status = $1
	WHERE id = $2 AND (status <> 'SOLD' OR $1 = 'SOLD')
	`

	result, err := r.db.ExecContext(ctx, query, seat.Status, seat.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// either the row is missing or the SOLD guard refused the write
		if _, err := r.FindSeat(ctx, seat.ID); err != nil {
			return fmt.Errorf("seat %d not updated: %w", seat.ID, err)
		}
		return fmt.Errorf("seat %d not moved to %s: %w", seat.ID, seat.Status, domain.ErrSeatAlreadySold)
	}

	return nil
}
