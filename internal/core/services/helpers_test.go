package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 20, 19, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memorySeatRepo is a map backed SeatRepository for scenario and race tests.
type memorySeatRepo struct {
	mu    sync.Mutex
	seats map[int64]domain.Seat
	saves int
}

func newMemorySeatRepo(seats ...domain.Seat) *memorySeatRepo {
	r := &memorySeatRepo{seats: make(map[int64]domain.Seat)}
	for _, s := range seats {
		r.seats[s.ID] = s
	}
	return r
}

func (r *memorySeatRepo) FindSeat(_ context.Context, seatID int64) (*domain.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.seats[seatID]
	if !ok {
		return nil, domain.ErrSeatNotFound
	}
	return &seat, nil
}

func (r *memorySeatRepo) FindAvailableSeats(_ context.Context, eventID int64) ([]domain.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var seats []domain.Seat
	for _, s := range r.seats {
		if s.EventID == eventID && s.Status == domain.SeatAvailable {
			seats = append(seats, s)
		}
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i].ID < seats[j].ID })
	return seats, nil
}

func (r *memorySeatRepo) SaveSeat(_ context.Context, seat *domain.Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seats[seat.ID] = *seat
	r.saves++
	return nil
}

func (r *memorySeatRepo) status(seatID int64) domain.SeatStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seats[seatID].Status
}

func (r *memorySeatRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// listCache is an in-memory SeatCache. Invalidate can be made to fail, or to
// park the first caller until release is closed.
type listCache struct {
	mu        sync.Mutex
	lists     map[int64][]domain.Seat
	failDel   bool
	entered   chan struct{}
	release   chan struct{}
	parkedOne bool
}

func newListCache() *listCache {
	return &listCache{lists: make(map[int64][]domain.Seat)}
}

func (c *listCache) GetAvailable(_ context.Context, eventID int64) ([]domain.Seat, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seats, ok := c.lists[eventID]
	if !ok {
		return nil, false, nil
	}
	return append([]domain.Seat(nil), seats...), true, nil
}

func (c *listCache) SetAvailable(_ context.Context, eventID int64, seats []domain.Seat) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lists[eventID] = append([]domain.Seat(nil), seats...)
	return nil
}

func (c *listCache) Invalidate(_ context.Context, eventID int64) error {
	c.mu.Lock()
	entered, release := c.entered, c.release
	park := entered != nil && !c.parkedOne
	if park {
		c.parkedOne = true
	}
	c.mu.Unlock()

	if park {
		close(entered)
		<-release
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failDel {
		return errors.New("redis: connection reset by peer")
	}
	delete(c.lists, eventID)
	return nil
}

// parkNextInvalidate makes the next Invalidate call block and returns a
// channel closed once it has started and a func letting it proceed.
func (c *listCache) parkNextInvalidate() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entered = make(chan struct{})
	c.release = make(chan struct{})
	c.parkedOne = false
	return c.entered, func() { close(c.release) }
}

func (c *listCache) setFailDelete(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failDel = fail
}

func (c *listCache) cached(eventID int64) ([]domain.Seat, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	seats, ok := c.lists[eventID]
	return seats, ok
}
