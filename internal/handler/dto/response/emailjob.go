package response

import (
	"time"

	"room-reservation-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type EmailJobResponse struct {
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

func FromEmailJobView(rm *queries.EmailJobView) *EmailJobResponse {
	return &EmailJobResponse{
		ID:            rm.ID,
		Recipient:     rm.Recipient,
		Subject:       rm.Subject,
		EmailType:     rm.EmailType,
		Status:        rm.Status,
		Attempts:      rm.Attempts,
		MaxAttempts:   rm.MaxAttempts,
		ScheduledAt:   rm.ScheduledAt,
		SentAt:        rm.SentAt,
		LastError:     rm.LastError,
		ReservationID: rm.ReservationID,
		CreatedAt:     rm.CreatedAt,
	}
}

func FromEmailJobViews(rms []*queries.EmailJobView) []*EmailJobResponse {
	out := make([]*EmailJobResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromEmailJobView(rm)
	}
	return out
}
