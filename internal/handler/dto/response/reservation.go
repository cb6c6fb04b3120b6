package response

import (
	"time"

	"room-reservation-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID                 uuid.UUID  `json:"id"`
	RoomID             uuid.UUID  `json:"roomId"`
	RoomNumber         string     `json:"roomNumber"`
	UserID             uuid.UUID  `json:"userId"`
	UserEmail          string     `json:"userEmail"`
	UserFullName       string     `json:"userFullName"`
	CheckIn            time.Time  `json:"checkIn"`
	CheckOut           time.Time  `json:"checkOut"`
	Nights             int32      `json:"nights"`
	Guests             int32      `json:"guests"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:                 rm.ID,
		RoomID:             rm.RoomID,
		RoomNumber:         rm.RoomNumber,
		UserID:             rm.UserID,
		UserEmail:          rm.UserEmail,
		UserFullName:       rm.UserFullName,
		CheckIn:            rm.CheckIn,
		CheckOut:           rm.CheckOut,
		Nights:             rm.Nights,
		Guests:             rm.Guests,
		Status:             rm.Status,
		CreatedAt:          rm.CreatedAt,
		CancelledAt:        rm.CancelledAt,
		CancellationReason: rm.CancellationReason,
	}
}

func FromReservationViews(rms []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromReservationView(rm)
	}
	return out
}
