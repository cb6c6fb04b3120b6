package commands

import (
	"context"
	"time"

	"room-reservation-api/internal/domain/mailqueue"
	"room-reservation-api/internal/domain/reservation"
	"room-reservation-api/internal/infra"
	"room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/pkg/clock"
	"room-reservation-api/internal/pkg/errs"
	"room-reservation-api/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound            = errs.New("room not found")
	ErrUserNotFound            = errs.New("user not found")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrRoomUnavailable         = errs.New("room is not available for the selected dates")
	ErrCancellationNotAllowed  = errs.New("reservation cannot be cancelled")
	ErrForbidden               = errs.New("caller does not own this reservation")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateReservationParams struct {
	UserID   uuid.UUID
	RoomID   uuid.UUID
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

type CancelReservationParams struct {
	ReservationID uuid.UUID
	CallerID      uuid.UUID
	IsAdmin       bool
	Reason        string
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, p CreateReservationParams) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, p CancelReservationParams) error
}

type reservationCommands struct {
	reservations ReservationRepository
	views        ReservationViews
	rooms        RoomRepository
	users        UserRepository
	enqueuer     *EmailEnqueuer
	waker        Waker
	tx           TxRunner
	clock        clock.Clock
}

func NewReservationCommands(
	reservations ReservationRepository,
	views ReservationViews,
	rooms RoomRepository,
	users UserRepository,
	enqueuer *EmailEnqueuer,
	waker Waker,
	tx TxRunner,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommands{
		reservations: reservations,
		views:        views,
		rooms:        rooms,
		users:        users,
		enqueuer:     enqueuer,
		waker:        waker,
		tx:           tx,
		clock:        clk,
	}
}

// CreateReservation books a room in the pending state. No mail is sent here;
// the confirmation is owed only after payment succeeds.
func (c *reservationCommands) CreateReservation(ctx context.Context, p CreateReservationParams) (*queries.ReservationView, error) {
	period, err := reservation.NewStayPeriod(p.CheckIn, p.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if _, err := c.resolveGuest(ctx, p.UserID); err != nil {
		return nil, err
	}

	room, err := c.rooms.FindByID(ctx, p.RoomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !room.IsActive {
		return nil, ErrRoomNotFound
	}

	entity, err := reservation.NewReservation(p.RoomID, p.UserID, period, p.Guests, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// The availability check and the insert share one transaction; the
	// storage-level exclusion constraint closes the remaining race between
	// concurrent transactions.
	err = c.tx.Within(ctx, func(tx db.DBTX) error {
		available, err := c.isRoomAvailable(ctx, tx, p.RoomID, period)
		if err != nil {
			return err
		}
		if !available {
			return ErrRoomUnavailable
		}

		if err := c.reservations.Create(ctx, tx, entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrRoomUnavailable
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.views.FindViewByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

// CancelReservation applies the cancellation policy and, on success, flips
// the status, stamps the cancellation and queues the cancellation notice.
// Either everything commits or nothing does.
func (c *reservationCommands) CancelReservation(ctx context.Context, p CancelReservationParams) error {
	reason := p.Reason
	if reason == "" {
		reason = "Cancelled by guest"
	}

	err := c.tx.Within(ctx, func(tx db.DBTX) error {
		entity, err := c.reservations.FindByID(ctx, tx, p.ReservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !p.IsAdmin && entity.UserID() != p.CallerID {
			return ErrForbidden
		}

		if err := entity.Cancel(c.clock.Now(), reason); err != nil {
			return errs.Mark(err, ErrCancellationNotAllowed)
		}

		if err := c.reservations.UpdateCancelled(ctx, tx, entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		guest, err := c.users.FindByID(ctx, entity.UserID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		subject, body := cancellationEmail(guest.FullName, entity)
		reservationID := entity.ID()
		if _, err := c.enqueuer.Enqueue(ctx, tx, guest.Email, subject, body, mailqueue.TypeCancellation, &reservationID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return nil
	})
	if err != nil {
		return err
	}

	c.waker.Wake()
	return nil
}

func (c *reservationCommands) resolveGuest(ctx context.Context, userID uuid.UUID) (*UserSnapshot, error) {
	guest, err := c.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !guest.IsActive {
		return nil, ErrUserNotFound
	}

	return guest, nil
}

// isRoomAvailable is the half-open interval check: an active reservation
// whose [checkIn, checkOut) intersects the requested stay blocks it;
// back-to-back stays do not.
func (c *reservationCommands) isRoomAvailable(ctx context.Context, tx db.DBTX, roomID uuid.UUID, period reservation.StayPeriod) (bool, error) {
	existing, err := c.reservations.ListActiveByRoom(ctx, tx, roomID)
	if err != nil {
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	for _, res := range existing {
		if period.Overlaps(res.Period()) {
			return false, nil
		}
	}

	return true, nil
}
