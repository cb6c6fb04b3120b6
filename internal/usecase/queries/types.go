package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView is the read model joined with room and guest reference
// data, keyed by stable ids only.
type ReservationView struct {
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

// EmailJobView exposes delivery state for operational follow-up; a failed
// status here means retries were exhausted.
type EmailJobView struct {
	ID            uuid.UUID  `json:"id"`
	Recipient     string     `json:"recipient"`
	Subject       string     `json:"subject"`
	EmailType     string     `json:"emailType"`
	Status        string     `json:"status"`
	Attempts      int32      `json:"attempts"`
	MaxAttempts   int32      `json:"maxAttempts"`
	ScheduledAt   time.Time  `json:"scheduledAt"`
	SentAt        *time.Time `json:"sentAt,omitempty"`
	LastError     *string    `json:"lastError,omitempty"`
	ReservationID *uuid.UUID `json:"reservationId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
