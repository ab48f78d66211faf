package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/ports"
	"github.com/srgjo27/seat_reservation/internal/platform/keylock"
)

type HoldSeatRequest struct {
	SeatID int64 `json:"seat_id"`
	UserID int64 `json:"user_id"`
}

type HoldSeatResponse struct {
	SeatID    int64  `json:"seat_id"`
	UserID    int64  `json:"user_id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// BookingService drives a seat from AVAILABLE through HELD to SOLD.
//
// Hold, Confirm and Release each run their check-then-act sequence inside the
// stripe of the seat id, so for a given seat they never interleave.
type BookingService struct {
	seatRepo  ports.SeatRepository
	holds     ports.HoldStore
	catalog   *SeatCatalog
	publisher ports.EventPublisher
	locks     *keylock.Striped

	holdTTL       time.Duration
	sweepInterval time.Duration
	now           func() time.Time
}

func NewBookingService(
	seatRepo ports.SeatRepository,
	holds ports.HoldStore,
	catalog *SeatCatalog,
	publisher ports.EventPublisher,
	holdTTL time.Duration,
	opts ...Option,
) *BookingService {
	cfg := buildSettings(opts)

	if holdTTL <= 0 {
		holdTTL = DefaultHoldTTL
	}
	if catalog == nil {
		catalog = NewSeatCatalog(seatRepo, nil)
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}

	return &BookingService{
		seatRepo:      seatRepo,
		holds:         holds,
		catalog:       catalog,
		publisher:     publisher,
		locks:         keylock.New(cfg.lockStripes),
		holdTTL:       holdTTL,
		sweepInterval: cfg.sweepInterval,
		now:           cfg.now,
	}
}

func (s *BookingService) HoldTTL() time.Duration {
	return s.holdTTL
}

// Hold places a hold for userID on seatID that expires HoldTTL from now.
// An active hold blocks everybody, the holder included.
func (s *BookingService) Hold(ctx context.Context, seatID, userID int64) (*domain.Hold, error) {
	unlock := s.locks.Lock(seatID)
	defer unlock()

	now := s.now()

	if current, ok := s.holds.Get(seatID); ok && current.ActiveAt(now) {
		return nil, domain.ErrSeatLocked
	}

	seat, err := s.loadSeat(ctx, seatID)
	if err != nil {
		return nil, err
	}

	if seat.IsSold() {
		return nil, domain.ErrSeatAlreadySold
	}

	hold := domain.NewHold(seatID, userID, now, s.holdTTL)
	if !s.holds.PutIfAbsentOrExpired(seatID, hold, now) {
		return nil, domain.ErrSeatLocked
	}

	log.Debug().
		Int64("seat_id", seatID).
		Int64("user_id", userID).
		Time("expires_at", hold.ExpiresAt).
		Msg("seat held")

	return &hold, nil
}

// HoldSeat is the request/response form of Hold used by the HTTP layer.
func (s *BookingService) HoldSeat(ctx context.Context, req HoldSeatRequest) (*HoldSeatResponse, error) {
	if req.SeatID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: seat_id and user_id must be positive", domain.ErrInvalidRequest)
	}

	hold, err := s.Hold(ctx, req.SeatID, req.UserID)
	if err != nil {
		return nil, err
	}

	return &HoldSeatResponse{
		SeatID:    hold.SeatID,
		UserID:    hold.UserID,
		Token:     hold.Token.String(),
		ExpiresAt: hold.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// Confirm turns the caller's active hold into a sale. An expired hold is
// evicted whoever asks; a hold owned by someone else is left untouched.
func (s *BookingService) Confirm(ctx context.Context, seatID, userID int64) error {
	seat, err := s.confirm(ctx, seatID, userID)
	if err != nil {
		return err
	}

	event := domain.SeatSoldEvent{
		MessageID:  uuid.New(),
		SeatID:     seat.ID,
		EventID:    seat.EventID,
		SeatNumber: seat.SeatNumber,
		UserID:     userID,
		SoldAt:     s.now().UTC(),
	}
	if err := s.publisher.PublishSeatSold(ctx, event); err != nil {
		log.Error().Err(err).Int64("seat_id", seatID).Msg("failed to publish seat sold event")
	}

	log.Info().
		Int64("seat_id", seatID).
		Int64("event_id", seat.EventID).
		Int64("user_id", userID).
		Msg("seat sold")

	return nil
}

func (s *BookingService) confirm(ctx context.Context, seatID, userID int64) (*domain.Seat, error) {
	unlock := s.locks.Lock(seatID)
	defer unlock()

	hold, ok := s.holds.Get(seatID)
	if !ok {
		return nil, domain.ErrSeatNotHeld
	}

	if !hold.ActiveAt(s.now()) {
		s.holds.Remove(seatID)
		return nil, domain.ErrReservationExpired
	}

	if !hold.OwnedBy(userID) {
		return nil, domain.ErrHeldByAnotherUser
	}

	seat, err := s.loadSeat(ctx, seatID)
	if err != nil {
		return nil, err
	}

	if seat.IsSold() {
		s.catalog.Invalidate(ctx, seat.EventID)
		s.holds.Remove(seatID)
		return nil, domain.ErrSeatAlreadySold
	}

	seat.Status = domain.SeatSold
	if err := s.seatRepo.SaveSeat(ctx, seat); err != nil {
		return nil, fmt.Errorf("failed to save seat %d: %w", seatID, err)
	}

	// The hold keeps the seat out of cached listings until the cache has
	// been dropped.
	s.catalog.Invalidate(ctx, seat.EventID)
	s.holds.Remove(seatID)

	return seat, nil
}

// Release lets the holder give a seat back before the hold runs out.
func (s *BookingService) Release(ctx context.Context, seatID, userID int64) error {
	unlock := s.locks.Lock(seatID)
	defer unlock()

	hold, ok := s.holds.Get(seatID)
	if !ok {
		return domain.ErrSeatNotHeld
	}

	if !hold.ActiveAt(s.now()) {
		s.holds.Remove(seatID)
		return domain.ErrSeatNotHeld
	}

	if !hold.OwnedBy(userID) {
		return domain.ErrHeldByAnotherUser
	}

	s.holds.Remove(seatID)

	log.Debug().Int64("seat_id", seatID).Int64("user_id", userID).Msg("hold released")

	return nil
}

func (s *BookingService) loadSeat(ctx context.Context, seatID int64) (*domain.Seat, error) {
	seat, err := s.seatRepo.FindSeat(ctx, seatID)
	if err != nil {
		if errors.Is(err, domain.ErrSeatNotFound) {
			return nil, domain.ErrSeatNotFound
		}
		return nil, fmt.Errorf("failed to load seat %d: %w", seatID, err)
	}
	if seat == nil {
		return nil, domain.ErrSeatNotFound
	}

	return seat, nil
}

func (s *BookingService) RunBackgroundCleanup(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	log.Info().Dur("interval", s.sweepInterval).Msg("hold sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("hold sweeper stopped")
			return
		case <-ticker.C:
			s.sweepExpiredHolds()
		}
	}
}

func (s *BookingService) sweepExpiredHolds() int {
	removed := s.holds.Sweep(s.now())
	if removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", s.holds.Len()).Msg("expired holds evicted")
	}

	return removed
}

type nopPublisher struct{}

func (nopPublisher) PublishSeatSold(context.Context, domain.SeatSoldEvent) error { return nil }
