package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CancellationLeadTime is the minimum interval between a cancellation request
// and the check-in date.
const CancellationLeadTime = 24 * time.Hour

var (
	ErrInvalidGuestCount      = errors.New("number of guests must be positive")
	ErrInvalidStatus          = errors.New("invalid reservation status")
	ErrNotPending             = errors.New("reservation is not pending")
	ErrAlreadyConfirmed       = errors.New("reservation is already confirmed")
	ErrAlreadyCancelled       = errors.New("reservation is already cancelled")
	ErrAlreadyCheckedIn       = errors.New("reservation is already checked in")
	ErrCancellationWindowShut = errors.New("cancellation window has closed")
)

type Reservation struct {
	id                 uuid.UUID
	roomID             uuid.UUID
	userID             uuid.UUID
	period             StayPeriod
	guests             int
	status             Status
	createdAt          time.Time
	cancelledAt        *time.Time
	cancellationReason string
}

// NewReservation builds a reservation in the initial pending state. No
// confirmation mail is owed until payment succeeds.
func NewReservation(roomID, userID uuid.UUID, period StayPeriod, guests int, now time.Time) (*Reservation, error) {
	if guests <= 0 {
		return nil, ErrInvalidGuestCount
	}

	return &Reservation{
		id:        uuid.New(),
		roomID:    roomID,
		userID:    userID,
		period:    period,
		guests:    guests,
		status:    StatusPending,
		createdAt: now,
	}, nil
}

func ReconstructReservation(
	id, roomID, userID uuid.UUID,
	period StayPeriod,
	guests int,
	status Status,
	createdAt time.Time,
	cancelledAt *time.Time,
	cancellationReason string,
) (*Reservation, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return &Reservation{
		id:                 id,
		roomID:             roomID,
		userID:             userID,
		period:             period,
		guests:             guests,
		status:             status,
		createdAt:          createdAt,
		cancelledAt:        cancelledAt,
		cancellationReason: cancellationReason,
	}, nil
}

// Confirm moves a pending reservation to confirmed. Confirming twice is the
// caller's signal to skip side effects.
func (r *Reservation) Confirm() error {
	switch r.status {
	case StatusPending:
		r.status = StatusConfirmed
		return nil
	case StatusConfirmed:
		return ErrAlreadyConfirmed
	default:
		return ErrNotPending
	}
}

// ValidateCancellationAt is the cancellation policy: a reservation cannot be
// cancelled once cancelled or checked in, nor within CancellationLeadTime of
// check-in. Pure function of state and wall-clock time.
func (r *Reservation) ValidateCancellationAt(now time.Time) error {
	switch r.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCheckedIn:
		return ErrAlreadyCheckedIn
	}

	if r.period.CheckIn().Sub(now) < CancellationLeadTime {
		return ErrCancellationWindowShut
	}

	return nil
}

func (r *Reservation) CanCancelAt(now time.Time) bool {
	return r.ValidateCancellationAt(now) == nil
}

// Cancel applies the state transition after ValidateCancellationAt passes.
func (r *Reservation) Cancel(now time.Time, reason string) error {
	if err := r.ValidateCancellationAt(now); err != nil {
		return err
	}

	r.status = StatusCancelled
	cancelledAt := now
	r.cancelledAt = &cancelledAt
	r.cancellationReason = reason
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) Nights() int {
	return r.period.Nights()
}

func (r *Reservation) ID() uuid.UUID              { return r.id }
func (r *Reservation) RoomID() uuid.UUID          { return r.roomID }
func (r *Reservation) UserID() uuid.UUID          { return r.userID }
func (r *Reservation) Period() StayPeriod         { return r.period }
func (r *Reservation) Guests() int                { return r.guests }
func (r *Reservation) Status() Status             { return r.status }
func (r *Reservation) CreatedAt() time.Time       { return r.createdAt }
func (r *Reservation) CancelledAt() *time.Time    { return r.cancelledAt }
func (r *Reservation) CancellationReason() string { return r.cancellationReason }
