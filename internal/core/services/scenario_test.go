package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/seat_reservation/internal/adapter/holdstore"
	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/ports"
	"github.com/srgjo27/seat_reservation/internal/core/services"
)

type system struct {
	booking *services.BookingService
	events  *services.EventService
	repo    *memorySeatRepo
	holds   *holdstore.MemoryStore
	clock   *fakeClock
}

func newSystem(seats ...domain.Seat) *system {
	return newCachedSystem(nil, seats...)
}

func newCachedSystem(cache ports.SeatCache, seats ...domain.Seat) *system {
	repo := newMemorySeatRepo(seats...)
	holds := holdstore.NewMemoryStore(8)
	clock := newFakeClock()
	catalog := services.NewSeatCatalog(repo, cache)

	return &system{
		booking: services.NewBookingService(repo, holds, catalog, nil, ttl, services.WithClock(clock.Now)),
		events:  services.NewEventService(catalog, holds, services.WithClock(clock.Now)),
		repo:    repo,
		holds:   holds,
		clock:   clock,
	}
}

func seat(id, eventID int64, number string) domain.Seat {
	return domain.Seat{ID: id, SeatNumber: number, EventID: eventID, Status: domain.SeatAvailable}
}

func listedIDs(t *testing.T, s *system, eventID int64) []int64 {
	t.Helper()
	views, err := s.events.ListAvailable(context.Background(), eventID)
	require.NoError(t, err)

	ids := make([]int64, 0, len(views))
	for _, v := range views {
		assert.Equal(t, "AVAILABLE", v.Status)
		ids = append(ids, v.SeatID)
	}
	return ids
}

func TestScenario_HoldConfirmThenSold(t *testing.T) {
	s := newSystem(seat(101, 1, "A1"), seat(100, 1, "A0"))
	ctx := context.Background()

	hold, err := s.booking.Hold(ctx, 101, 7)
	require.NoError(t, err)
	assert.Equal(t, s.clock.Now().Add(10*time.Minute), hold.ExpiresAt)

	assert.Equal(t, []int64{100}, listedIDs(t, s, 1))

	s.clock.Advance(5 * time.Minute)
	require.NoError(t, s.booking.Confirm(ctx, 101, 7))
	assert.Equal(t, domain.SeatSold, s.repo.status(101))
	assert.Equal(t, 0, s.holds.Len())

	_, err = s.booking.Hold(ctx, 101, 9)
	assert.ErrorIs(t, err, domain.ErrSeatAlreadySold)

	assert.Equal(t, []int64{100}, listedIDs(t, s, 1))
}

func TestScenario_ExpiredHoldFreesSeat(t *testing.T) {
	s := newSystem(seat(102, 1, "A2"))
	ctx := context.Background()

	_, err := s.booking.Hold(ctx, 102, 1)
	require.NoError(t, err)

	s.clock.Advance(10*time.Minute + time.Second)
	assert.Equal(t, []int64{102}, listedIDs(t, s, 1), "expired hold no longer hides the seat")

	err = s.booking.Confirm(ctx, 102, 1)
	assert.ErrorIs(t, err, domain.ErrReservationExpired)
	assert.Equal(t, domain.SeatAvailable, s.repo.status(102))
	assert.Equal(t, 0, s.holds.Len())

	hold, err := s.booking.Hold(ctx, 102, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hold.UserID)
}

func TestScenario_ForeignConfirmKeepsHold(t *testing.T) {
	s := newSystem(seat(103, 1, "A3"))
	ctx := context.Background()

	_, err := s.booking.Hold(ctx, 103, 1)
	require.NoError(t, err)

	_, err = s.booking.Hold(ctx, 103, 2)
	assert.ErrorIs(t, err, domain.ErrSeatLocked)

	err = s.booking.Confirm(ctx, 103, 2)
	assert.ErrorIs(t, err, domain.ErrHeldByAnotherUser)

	stored, ok := s.holds.Get(103)
	require.True(t, ok)
	assert.Equal(t, int64(1), stored.UserID)

	require.NoError(t, s.booking.Confirm(ctx, 103, 1))
	assert.Equal(t, domain.SeatSold, s.repo.status(103))
}

func TestScenario_ReleaseMakesSeatListable(t *testing.T) {
	s := newSystem(seat(104, 2, "B1"))
	ctx := context.Background()

	_, err := s.booking.Hold(ctx, 104, 1)
	require.NoError(t, err)
	assert.Empty(t, listedIDs(t, s, 2))

	require.NoError(t, s.booking.Release(ctx, 104, 1))
	assert.Equal(t, []int64{104}, listedIDs(t, s, 2))
}

func TestConcurrentHold_SingleWinner(t *testing.T) {
	s := newSystem(seat(200, 1, "C1"))

	const callers = 64
	results := make(chan error, callers)
	var start sync.WaitGroup
	start.Add(1)

	var wg sync.WaitGroup
	for user := int64(1); user <= callers; user++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			start.Wait()
			_, err := s.booking.Hold(context.Background(), 200, user)
			results <- err
		}(user)
	}
	start.Done()
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrSeatLocked)
	}
	assert.Equal(t, 1, wins)
}

func TestConcurrentConfirmAndHold_NeverDoubleSold(t *testing.T) {
	for round := 0; round < 20; round++ {
		s := newSystem(seat(300, 1, "D1"))
		ctx := context.Background()

		_, err := s.booking.Hold(ctx, 300, 1)
		require.NoError(t, err)

		// the owner confirms while a crowd tries to grab the seat
		s.clock.Advance(10*time.Minute - time.Millisecond)

		var wg sync.WaitGroup
		var confirmErr error
		wg.Add(1)
		go func() {
			defer wg.Done()
			confirmErr = s.booking.Confirm(ctx, 300, 1)
		}()

		holdWins := make(chan int64, 16)
		for user := int64(2); user < 18; user++ {
			wg.Add(1)
			go func(user int64) {
				defer wg.Done()
				if _, err := s.booking.Hold(ctx, 300, user); err == nil {
					holdWins <- user
				} else if !errors.Is(err, domain.ErrSeatLocked) && !errors.Is(err, domain.ErrSeatAlreadySold) {
					t.Errorf("unexpected hold error: %v", err)
				}
			}(user)
		}
		wg.Wait()
		close(holdWins)

		require.NoError(t, confirmErr)
		assert.Empty(t, holdWins, "hold must fail while owned or once sold")
		assert.Equal(t, domain.SeatSold, s.repo.status(300))
		assert.Equal(t, 1, s.repo.saveCount())
	}
}

func TestConcurrentConfirm_OnlyOwnerSucceedsOnce(t *testing.T) {
	s := newSystem(seat(400, 1, "E1"))
	ctx := context.Background()

	_, err := s.booking.Hold(ctx, 400, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.booking.Confirm(ctx, 400, 1)
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrSeatNotHeld)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, s.repo.saveCount())
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timed out waiting for "+what)
	}
}

func TestScenario_CachedListingDuringConfirm(t *testing.T) {
	cache := newListCache()
	s := newCachedSystem(cache, seat(101, 1, "A1"), seat(100, 1, "A0"))
	ctx := context.Background()

	assert.Equal(t, []int64{100, 101}, listedIDs(t, s, 1))
	_, filled := cache.cached(1)
	require.True(t, filled)

	_, err := s.booking.Hold(ctx, 101, 7)
	require.NoError(t, err)

	entered, release := cache.parkNextInvalidate()
	done := make(chan error, 1)
	go func() { done <- s.booking.Confirm(ctx, 101, 7) }()

	waitFor(t, entered, "cache invalidation")
	require.Equal(t, domain.SeatSold, s.repo.status(101))
	assert.Equal(t, []int64{100}, listedIDs(t, s, 1), "sold seat listed while confirm is in flight")

	release()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "confirm did not finish")
	}

	assert.Equal(t, []int64{100}, listedIDs(t, s, 1))
	cached, ok := cache.cached(1)
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, int64(100), cached[0].ID)
}

func TestScenario_FailedInvalidationNeverListsSoldSeat(t *testing.T) {
	cache := newListCache()
	s := newCachedSystem(cache, seat(101, 1, "A1"), seat(100, 1, "A0"))
	ctx := context.Background()

	assert.Equal(t, []int64{100, 101}, listedIDs(t, s, 1))

	_, err := s.booking.Hold(ctx, 101, 7)
	require.NoError(t, err)

	cache.setFailDelete(true)
	require.NoError(t, s.booking.Confirm(ctx, 101, 7))

	// the pre-sale copy is still in the cache but must not be served
	stale, ok := cache.cached(1)
	require.True(t, ok)
	assert.Len(t, stale, 2)
	assert.Equal(t, []int64{100}, listedIDs(t, s, 1))
	assert.Equal(t, []int64{100}, listedIDs(t, s, 1))

	cache.setFailDelete(false)
	assert.Equal(t, []int64{100}, listedIDs(t, s, 1))
	_, ok = cache.cached(1)
	assert.False(t, ok, "recovered delete leaves the cache empty")

	assert.Equal(t, []int64{100}, listedIDs(t, s, 1))
	cached, ok := cache.cached(1)
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, int64(100), cached[0].ID)
}
