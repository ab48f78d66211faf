package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/ports"
	"github.com/srgjo27/seat_reservation/internal/platform/keylock"
)

// SeatCatalog serves the durable available seat list of an event, backed by
// an optional cache.
//
// Invalidate marks the event stale before deleting its key, and fills never
// write while an event is stale, so a successful delete always leaves the
// cache empty for that event. A stale event is read straight from the
// repository; each such read retries the delete.
type SeatCatalog struct {
	seatRepo ports.SeatRepository
	cache    ports.SeatCache
	locks    *keylock.Striped

	mu    sync.Mutex
	stale map[int64]struct{}
}

func NewSeatCatalog(seatRepo ports.SeatRepository, cache ports.SeatCache) *SeatCatalog {
	if cache == nil {
		cache = nopCache{}
	}

	return &SeatCatalog{
		seatRepo: seatRepo,
		cache:    cache,
		locks:    keylock.New(keylock.DefaultStripes),
		stale:    make(map[int64]struct{}),
	}
}

func (c *SeatCatalog) AvailableSeats(ctx context.Context, eventID int64) ([]domain.Seat, error) {
	if !c.isStale(eventID) {
		seats, hit, err := c.cache.GetAvailable(ctx, eventID)
		if err != nil {
			log.Warn().Err(err).Int64("event_id", eventID).Msg("seat cache read failed, falling back to repository")
		} else if hit && !c.isStale(eventID) {
			return seats, nil
		}
	}

	unlock := c.locks.Lock(eventID)
	defer unlock()

	seats, err := c.seatRepo.FindAvailableSeats(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load available seats for event %d: %w", eventID, err)
	}

	if c.isStale(eventID) {
		if err := c.cache.Invalidate(ctx, eventID); err == nil {
			c.setStale(eventID, false)
		}
		return seats, nil
	}

	if err := c.cache.SetAvailable(ctx, eventID, seats); err != nil {
		log.Warn().Err(err).Int64("event_id", eventID).Msg("seat cache write failed")
	}

	return seats, nil
}

// Invalidate drops the cached list of an event. Call it after the durable
// write it reflects has completed and before that write can be observed
// through the hold store.
func (c *SeatCatalog) Invalidate(ctx context.Context, eventID int64) {
	// waits for an in-flight fill, which may have read the repository
	// before the write
	unlock := c.locks.Lock(eventID)
	c.setStale(eventID, true)
	unlock()

	if err := c.cache.Invalidate(ctx, eventID); err != nil {
		log.Error().Err(err).Int64("event_id", eventID).Msg("seat cache invalidation failed, bypassing cache for event")
		return
	}

	c.setStale(eventID, false)
}

func (c *SeatCatalog) isStale(eventID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.stale[eventID]
	return ok
}

func (c *SeatCatalog) setStale(eventID int64, stale bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if stale {
		c.stale[eventID] = struct{}{}
		return
	}
	delete(c.stale, eventID)
}

type nopCache struct{}

func (nopCache) GetAvailable(context.Context, int64) ([]domain.Seat, bool, error) {
	return nil, false, nil
}

func (nopCache) SetAvailable(context.Context, int64, []domain.Seat) error { return nil }

func (nopCache) Invalidate(context.Context, int64) error { return nil }
