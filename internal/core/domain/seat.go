package domain

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatSold      SeatStatus = "SOLD"
)

type Seat struct {
	ID         int64
	SeatNumber string
	EventID    int64
	Status     SeatStatus
}

func (s *Seat) IsAvailable() bool {
	return s.Status == SeatAvailable
}

func (s *Seat) IsSold() bool {
	return s.Status == SeatSold
}

// SeatView is the listing projection of a seat.
type SeatView struct {
	SeatID     int64  `json:"seat_id"`
	SeatNumber string `json:"seat_number"`
	Status     string `json:"status"`
}

func (s *Seat) View() SeatView {
	return SeatView{
		SeatID:     s.ID,
		SeatNumber: s.SeatNumber,
		Status:     string(s.Status),
	}
}
