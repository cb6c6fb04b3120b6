package mailqueue

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusSent     Status = "sent"
	StatusFailed   Status = "failed"
	StatusRetrying Status = "retrying"
)

func (s Status) String() string {
	return string(s)
}

// Due statuses are the ones the dispatcher picks up.
func (s Status) IsDue() bool {
	return s == StatusPending || s == StatusRetrying
}

type EmailType string

const (
	TypeConfirmation EmailType = "confirmation"
	TypeReminder     EmailType = "reminder"
	TypeCancellation EmailType = "cancellation"
	TypeNotification EmailType = "notification"
)

func (t EmailType) IsValid() bool {
	switch t {
	case TypeConfirmation, TypeReminder, TypeCancellation, TypeNotification:
		return true
	default:
		return false
	}
}

var (
	ErrInvalidRecipient = errors.New("recipient address is required")
	ErrInvalidEmailType = errors.New("invalid email type")
	ErrJobNotRetryable  = errors.New("job is not in a retryable state")
)

// Job is one outbound notification. Rows are never deleted; sent and failed
// jobs remain as an audit trail.
type Job struct {
	ID            uuid.UUID
	Recipient     string
	Subject       string
	Body          string
	EmailType     EmailType
	Metadata      string
	ReservationID *uuid.UUID
	Status        Status
	Attempts      int32
	MaxAttempts   int32
	ScheduledAt   time.Time
	SentAt        *time.Time
	LastError     string
	CreatedAt     time.Time
}

func NewJob(recipient, subject, body string, emailType EmailType, reservationID *uuid.UUID, maxAttempts int32, now time.Time) (*Job, error) {
	if recipient == "" {
		return nil, ErrInvalidRecipient
	}
	if !emailType.IsValid() {
		return nil, ErrInvalidEmailType
	}

	return &Job{
		ID:            uuid.New(),
		Recipient:     recipient,
		Subject:       subject,
		Body:          body,
		EmailType:     emailType,
		ReservationID: reservationID,
		Status:        StatusPending,
		Attempts:      0,
		MaxAttempts:   maxAttempts,
		ScheduledAt:   now,
		CreatedAt:     now,
	}, nil
}

// MarkSent records a successful delivery attempt.
func (j *Job) MarkSent(now time.Time) {
	j.Status = StatusSent
	sentAt := now
	j.SentAt = &sentAt
	j.Attempts++
}

// RecordFailure consumes one attempt and either schedules a retry after
// backoff or, once attempts reach MaxAttempts, parks the job as failed.
// Failed is terminal; only an explicit re-enqueue revives the job.
func (j *Job) RecordFailure(deliveryErr error, backoff time.Duration, now time.Time) {
	j.Attempts++
	j.LastError = deliveryErr.Error()

	if j.Attempts < j.MaxAttempts {
		j.Status = StatusRetrying
		j.ScheduledAt = now.Add(backoff)
		return
	}

	j.Status = StatusFailed
}

// ResetForRetry is the manual re-enqueue of a terminally failed job.
func (j *Job) ResetForRetry(now time.Time) error {
	if j.Status != StatusFailed {
		return ErrJobNotRetryable
	}

	j.Status = StatusPending
	j.Attempts = 0
	j.LastError = ""
	j.ScheduledAt = now
	return nil
}
