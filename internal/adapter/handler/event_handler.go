package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

type ListingUseCase interface {
	ListAvailable(ctx context.Context, eventID int64) ([]domain.SeatView, error)
}

type EventHandler struct {
	svc ListingUseCase
}

func NewEventHandler(svc ListingUseCase) *EventHandler {
	return &EventHandler{svc: svc}
}

// GetAvailableSeats handles GET /events/:eventId/seats.
func (h *EventHandler) GetAvailableSeats(c echo.Context) error {
	eventID, err := positiveID(c.Param("eventId"))
	if err != nil {
		return writeError(c, fmt.Errorf("%w: eventId %v", domain.ErrInvalidRequest, err))
	}

	seats, err := h.svc.ListAvailable(c.Request().Context(), eventID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, seats)
}

func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
