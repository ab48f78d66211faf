package domain

import (
	"time"

	"github.com/google/uuid"
)

// SeatSoldEvent is emitted once a hold has been converted into a sale.
type SeatSoldEvent struct {
	MessageID  uuid.UUID `json:"message_id"`
	SeatID     int64     `json:"seat_id"`
	EventID    int64     `json:"event_id"`
	SeatNumber string    `json:"seat_number"`
	UserID     int64     `json:"user_id"`
	SoldAt     time.Time `json:"sold_at"`
}
