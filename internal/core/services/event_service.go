package services

import (
	"context"
	"time"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/ports"
)

// EventService answers the read side: which seats of an event can be held
// right now. The answer is a point-in-time snapshot of durable status and
// holds; it takes no locks.
type EventService struct {
	catalog *SeatCatalog
	holds   ports.HoldStore
	now     func() time.Time
}

func NewEventService(catalog *SeatCatalog, holds ports.HoldStore, opts ...Option) *EventService {
	cfg := buildSettings(opts)

	return &EventService{
		catalog: catalog,
		holds:   holds,
		now:     cfg.now,
	}
}

func (s *EventService) ListAvailable(ctx context.Context, eventID int64) ([]domain.SeatView, error) {
	seats, err := s.catalog.AvailableSeats(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]domain.SeatView, 0, len(seats))
	for i := range seats {
		seat := &seats[i]
		if !seat.IsAvailable() {
			continue
		}
		if hold, ok := s.holds.Get(seat.ID); ok && hold.ActiveAt(now) {
			continue
		}
		views = append(views, seat.View())
	}

	return views, nil
}
