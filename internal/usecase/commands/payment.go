package commands

import (
	"context"
	"fmt"
	"strings"

	"room-reservation-api/internal/domain/mailqueue"
	"room-reservation-api/internal/domain/reservation"
	"room-reservation-api/internal/infra"
	"room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/pkg/clock"
	"room-reservation-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPaymentProviderFailed = errs.New("payment provider request failed")
	ErrPaymentNotCompleted   = errs.New("payment has not completed")
	ErrReservationNotPayable = errs.New("reservation is not awaiting payment")
	ErrAmountMismatch        = errs.New("amount does not match the reservation price")
	ErrInvalidCurrency       = errs.New("invalid currency code")
)

const (
	paidStatus      = "paid"
	defaultCurrency = "usd"
)

type CreateCheckoutParams struct {
	ReservationID uuid.UUID
	// AmountMinorUnits is what the caller expects to be charged. Zero means
	// "charge the reservation price"; any other value must match the
	// server-derived total exactly.
	AmountMinorUnits   int64
	Currency           string
	ProductName        string
	ProductDescription string
}

type PaymentCommands interface {
	CreateCheckoutSession(ctx context.Context, p CreateCheckoutParams) (*CheckoutSession, error)
	ConfirmPayment(ctx context.Context, sessionID string) (bool, error)
	HandleProviderEvent(ctx context.Context, payload []byte, signatureHeader string) (bool, error)
}

type paymentCommands struct {
	reservations ReservationRepository
	rooms        RoomRepository
	users        UserRepository
	events       PaymentEventRepository
	provider     PaymentProvider
	enqueuer     *EmailEnqueuer
	waker        Waker
	tx           TxRunner
	clock        clock.Clock
}

func NewPaymentCommands(
	reservations ReservationRepository,
	rooms RoomRepository,
	users UserRepository,
	events PaymentEventRepository,
	provider PaymentProvider,
	enqueuer *EmailEnqueuer,
	waker Waker,
	tx TxRunner,
	clk clock.Clock,
) PaymentCommands {
	return &paymentCommands{
		reservations: reservations,
		rooms:        rooms,
		users:        users,
		events:       events,
		provider:     provider,
		enqueuer:     enqueuer,
		waker:        waker,
		tx:           tx,
		clock:        clk,
	}
}

// CreateCheckoutSession opens a hosted payment page for a pending
// reservation. The chargeable amount is derived server-side from the room
// rate and the length of stay; a caller-supplied amount is only accepted when
// it matches that total, so the client can never price its own booking.
func (c *paymentCommands) CreateCheckoutSession(ctx context.Context, p CreateCheckoutParams) (*CheckoutSession, error) {
	currency, err := resolveCurrency(p.Currency)
	if err != nil {
		return nil, err
	}

	entity, err := c.findReservation(ctx, p.ReservationID)
	if err != nil {
		return nil, err
	}
	if entity.Status() != reservation.StatusPending {
		return nil, ErrReservationNotPayable
	}

	room, err := c.rooms.FindByID(ctx, entity.RoomID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	total := room.PricePerNightCents * int64(entity.Period().Nights())
	if p.AmountMinorUnits != 0 && p.AmountMinorUnits != total {
		return nil, ErrAmountMismatch
	}

	name := p.ProductName
	if name == "" {
		name = fmt.Sprintf("Room %s (%s)", room.RoomNumber, room.RoomType)
	}
	description := p.ProductDescription
	if description == "" {
		description = fmt.Sprintf("Stay from %s to %s",
			entity.Period().CheckIn().Format(dateLayout),
			entity.Period().CheckOut().Format(dateLayout))
	}

	session, err := c.provider.CreateCheckoutSession(ctx, CheckoutRequest{
		AmountMinorUnits:   total,
		Currency:           currency,
		ProductName:        name,
		ProductDescription: description,
		ReservationID:      entity.ID(),
	})
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentProviderFailed)
	}

	return session, nil
}

// resolveCurrency normalizes an ISO 4217 code to the lowercase form the
// provider expects. Empty means the deployment default.
func resolveCurrency(code string) (string, error) {
	if code == "" {
		return defaultCurrency, nil
	}

	code = strings.ToLower(code)
	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return "", ErrInvalidCurrency
		}
	}

	return code, nil
}

// ConfirmPayment is the success-redirect path: the client hands back the
// session id and we ask the provider whether it was actually paid. Safe to
// call any number of times for the same session.
func (c *paymentCommands) ConfirmPayment(ctx context.Context, sessionID string) (bool, error) {
	session, err := c.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return false, errs.Mark(err, ErrPaymentProviderFailed)
	}
	if session.PaymentStatus != paidStatus {
		return false, ErrPaymentNotCompleted
	}

	reservationID, err := uuid.Parse(session.ReservationID)
	if err != nil {
		return false, errs.Wrap(err, "checkout session carries no reservation id")
	}

	return c.confirm(ctx, reservationID, "session:"+session.ID)
}

// HandleProviderEvent is the webhook path. A bad signature or an event we
// do not care about is reported as not-confirmed, never as an error, so the
// provider does not keep redelivering what we have deliberately ignored.
func (c *paymentCommands) HandleProviderEvent(ctx context.Context, payload []byte, signatureHeader string) (bool, error) {
	event, err := c.provider.VerifyEvent(payload, signatureHeader)
	if err != nil {
		return false, nil
	}
	if event.Type != "checkout.session.completed" || event.Session.PaymentStatus != paidStatus {
		return false, nil
	}

	reservationID, err := uuid.Parse(event.Session.ReservationID)
	if err != nil {
		return false, nil
	}

	return c.confirm(ctx, reservationID, "event:"+event.ID)
}

// confirm is the single funnel both payment paths go through. The event key
// claim makes redelivery a no-op and the conditional status update makes a
// concurrent first delivery win exactly once; only the transaction that
// performed the transition owes the confirmation email.
func (c *paymentCommands) confirm(ctx context.Context, reservationID uuid.UUID, eventKey string) (bool, error) {
	var transitioned bool
	err := c.tx.Within(ctx, func(tx db.DBTX) error {
		entity, err := c.reservations.FindByID(ctx, tx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		claimed, err := c.events.TryClaim(ctx, tx, eventKey, reservationID, c.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !claimed {
			// Redelivery of an event we already processed.
			transitioned = entity.Status() == reservation.StatusConfirmed
			return nil
		}

		ok, err := c.reservations.ConfirmIfPending(ctx, tx, reservationID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !ok {
			// A different event key got there first, or the reservation
			// was cancelled in the meantime.
			transitioned = entity.Status() == reservation.StatusConfirmed
			return nil
		}

		if err := entity.Confirm(); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		guest, err := c.users.FindByID(ctx, entity.UserID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		subject, body := confirmationEmail(guest.FullName, entity)
		if _, err := c.enqueuer.Enqueue(ctx, tx, guest.Email, subject, body, mailqueue.TypeConfirmation, &reservationID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		transitioned = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if transitioned {
		c.waker.Wake()
	}
	return transitioned, nil
}

func (c *paymentCommands) findReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var entity *reservation.Reservation
	err := c.tx.Within(ctx, func(tx db.DBTX) error {
		found, err := c.reservations.FindByID(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		entity = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}
