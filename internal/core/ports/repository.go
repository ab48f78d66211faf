package ports

import (
	"context"
	"time"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

// SeatRepository is the durable store of seats. FindSeat returns
// domain.ErrSeatNotFound when the id is unknown.
type SeatRepository interface {
	FindSeat(ctx context.Context, seatID int64) (*domain.Seat, error)
	FindAvailableSeats(ctx context.Context, eventID int64) ([]domain.Seat, error)
	SaveSeat(ctx context.Context, seat *domain.Seat) error
}

// HoldStore keeps the ephemeral holds. Every method is atomic with respect
// to the others for the same seat id.
type HoldStore interface {
	Get(seatID int64) (domain.Hold, bool)
	Put(seatID int64, hold domain.Hold)
	Remove(seatID int64)
	PutIfAbsentOrExpired(seatID int64, hold domain.Hold, now time.Time) bool
	Sweep(now time.Time) int
	Len() int
}

// SeatCache caches the durable available seat list of an event.
// A miss is reported as (nil, false, nil).
type SeatCache interface {
	GetAvailable(ctx context.Context, eventID int64) ([]domain.Seat, bool, error)
	SetAvailable(ctx context.Context, eventID int64, seats []domain.Seat) error
	Invalidate(ctx context.Context, eventID int64) error
}

type EventPublisher interface {
	PublishSeatSold(ctx context.Context, event domain.SeatSoldEvent) error
}
