package domain

import "errors"

var (
	ErrSeatNotFound       = errors.New("seat not found")
	ErrSeatLocked         = errors.New("seat already locked")
	ErrSeatAlreadySold    = errors.New("seat is already sold")
	ErrSeatNotHeld        = errors.New("seat not held")
	ErrReservationExpired = errors.New("reservation expired")
	ErrHeldByAnotherUser  = errors.New("seat is held by another user")

	ErrInvalidRequest = errors.New("invalid request")
)
