package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/services"
)

type BookingUseCase interface {
	HoldSeat(ctx context.Context, req services.HoldSeatRequest) (*services.HoldSeatResponse, error)
	Confirm(ctx context.Context, seatID, userID int64) error
	Release(ctx context.Context, seatID, userID int64) error
}

type BookingHandler struct {
	svc BookingUseCase
}

func NewBookingHandler(svc BookingUseCase) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type ConfirmResponse struct {
	SeatID int64  `json:"seat_id"`
	Status string `json:"status"`
}

// HoldSeat handles POST /bookings.
func (h *BookingHandler) HoldSeat(c echo.Context) error {
	var req services.HoldSeatRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: invalid json body", domain.ErrInvalidRequest))
	}

	userID, err := resolveUser(c, req.UserID)
	if err != nil {
		return writeError(c, err)
	}
	req.UserID = userID

	resp, err := h.svc.HoldSeat(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// ConfirmBooking handles PATCH /bookings/:seatId?userId=.
func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	seatID, userID, err := seatAndUser(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.svc.Confirm(c.Request().Context(), seatID, userID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ConfirmResponse{SeatID: seatID, Status: string(domain.SeatSold)})
}

// ReleaseHold handles DELETE /bookings/:seatId?userId=.
func (h *BookingHandler) ReleaseHold(c echo.Context) error {
	seatID, userID, err := seatAndUser(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.svc.Release(c.Request().Context(), seatID, userID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func seatAndUser(c echo.Context) (int64, int64, error) {
	seatID, err := positiveID(c.Param("seatId"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: seatId %v", domain.ErrInvalidRequest, err)
	}

	var supplied int64
	if raw := c.QueryParam("userId"); raw != "" {
		supplied, err = positiveID(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: userId %v", domain.ErrInvalidRequest, err)
		}
	}

	userID, err := resolveUser(c, supplied)
	if err != nil {
		return 0, 0, err
	}
	if userID == 0 {
		return 0, 0, fmt.Errorf("%w: userId is required", domain.ErrInvalidRequest)
	}

	return seatID, userID, nil
}

func positiveID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	if id <= 0 {
		return 0, errors.New("must be positive")
	}
	return id, nil
}
