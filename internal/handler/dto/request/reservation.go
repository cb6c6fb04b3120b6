package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID   uuid.UUID `json:"roomId" binding:"required"`
	CheckIn  time.Time `json:"checkIn" binding:"required"`
	CheckOut time.Time `json:"checkOut" binding:"required"`
	Guests   int       `json:"guests" binding:"required,min=1"`
}

type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r CancelReservationRequest) GetReason() string {
	if r.Reason == nil {
		return ""
	}
	return strings.TrimSpace(*r.Reason)
}
