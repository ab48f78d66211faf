package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

const DefaultTTL = 30 * time.Second

type cachedSeat struct {
	ID         int64  `json:"id"`
	SeatNumber string `json:"seat_number"`
	EventID    int64  `json:"event_id"`
	Status     string `json:"status"`
}

// RedisSeatCache stores the durable available seats of an event as JSON
// under seats:<eventID>.
type RedisSeatCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSeatCache(client *redis.Client, ttl time.Duration) *RedisSeatCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisSeatCache{client: client, ttl: ttl}
}

func Key(eventID int64) string {
	return fmt.Sprintf("seats:%d", eventID)
}

func (c *RedisSeatCache) GetAvailable(ctx context.Context, eventID int64) ([]domain.Seat, bool, error) {
	data, err := c.client.Get(ctx, Key(eventID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cached []cachedSeat
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("decode cached seats for event %d: %w", eventID, err)
	}

	seats := make([]domain.Seat, len(cached))
	for i, s := range cached {
		seats[i] = domain.Seat{
			ID:         s.ID,
			SeatNumber: s.SeatNumber,
			EventID:    s.EventID,
			Status:     domain.SeatStatus(s.Status),
		}
	}

	return seats, true, nil
}

func (c *RedisSeatCache) SetAvailable(ctx context.Context, eventID int64, seats []domain.Seat) error {
	data, err := Encode(seats)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, Key(eventID), data, c.ttl).Err()
}

func (c *RedisSeatCache) Invalidate(ctx context.Context, eventID int64) error {
	return c.client.Del(ctx, Key(eventID)).Err()
}

// Encode renders seats the way they are stored in Redis.
func Encode(seats []domain.Seat) ([]byte, error) {
	cached := make([]cachedSeat, len(seats))
	for i, s := range seats {
		cached[i] = cachedSeat{
			ID:         s.ID,
			SeatNumber: s.SeatNumber,
			EventID:    s.EventID,
			Status:     string(s.Status),
		}
	}

	return json.Marshal(cached)
}
