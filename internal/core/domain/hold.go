package domain

import (
	"time"

	"github.com/google/uuid"
)

// Hold is an in-memory, time bounded claim on a seat. It is never persisted.
type Hold struct {
	SeatID    int64
	UserID    int64
	Token     uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

func NewHold(seatID, userID int64, now time.Time, ttl time.Duration) Hold {
	return Hold{
		SeatID:    seatID,
		UserID:    userID,
		Token:     uuid.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// ActiveAt reports whether the hold still blocks the seat at now.
// A hold whose expiry equals now is already expired.
func (h Hold) ActiveAt(now time.Time) bool {
	return h.ExpiresAt.After(now)
}

func (h Hold) OwnedBy(userID int64) bool {
	return h.UserID == userID
}
