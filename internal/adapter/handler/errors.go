package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

var errIdentityMismatch = errors.New("user id does not match the authenticated user")

type ErrorResponse struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSeatNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSeatLocked),
		errors.Is(err, domain.ErrSeatAlreadySold),
		errors.Is(err, domain.ErrSeatNotHeld):
		return http.StatusConflict
	case errors.Is(err, domain.ErrReservationExpired):
		return http.StatusGone
	case errors.Is(err, domain.ErrHeldByAnotherUser), errors.Is(err, errIdentityMismatch):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		message = "internal server error"
	}

	return c.JSON(status, ErrorResponse{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}
