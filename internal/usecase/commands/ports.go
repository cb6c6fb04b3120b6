package commands

import (
	"context"
	"time"

	"room-reservation-api/internal/domain/mailqueue"
	"room-reservation-api/internal/domain/reservation"
	"room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// Write-side snapshots keep commands off the read-model types. Rooms and
// users are reference data owned elsewhere; the core only does key lookups.
type RoomSnapshot struct {
	ID                 uuid.UUID
	RoomNumber         string
	RoomType           string
	PricePerNightCents int64
	IsActive           bool
}

type UserSnapshot struct {
	ID       uuid.UUID
	Email    string
	FullName string
	Role     string
	IsActive bool
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	ListActiveByRoom(ctx context.Context, tx db.DBTX, roomID uuid.UUID) ([]*reservation.Reservation, error)
	UpdateCancelled(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	ConfirmIfPending(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error)
}

type ReservationViews interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
}

type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	FindByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	FindCredentialsByEmail(ctx context.Context, email string) (*UserSnapshot, string, error)
}

type EmailJobRepository interface {
	Create(ctx context.Context, tx db.DBTX, job *mailqueue.Job) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*mailqueue.Job, error)
	ClaimDue(ctx context.Context, tx db.DBTX, now, leaseUntil time.Time, limit int32) ([]*mailqueue.Job, error)
	UpdateDeliveryState(ctx context.Context, tx db.DBTX, job *mailqueue.Job) error
}

type PaymentEventRepository interface {
	TryClaim(ctx context.Context, tx db.DBTX, eventKey string, reservationID uuid.UUID, now time.Time) (bool, error)
}

// TxRunner scopes a unit of work to one transaction. A non-nil error from
// fn rolls the whole unit back.
type TxRunner interface {
	Within(ctx context.Context, fn func(tx db.DBTX) error) error
}

// Waker pokes the email dispatcher after a job row is committed. Enqueue
// never drains inline; request latency stays decoupled from the mail
// provider.
type Waker interface {
	Wake()
}

// CheckoutSession is what the caller needs to redirect a guest to the
// provider's hosted payment page.
type CheckoutSession struct {
	SessionID      string
	SessionURL     string
	PublishableKey string
}

// ProviderSession is the provider's view of a checkout session. The
// reservation id travels as opaque metadata.
type ProviderSession struct {
	ID            string
	PaymentStatus string
	ReservationID string
}

type ProviderEvent struct {
	ID      string
	Type    string
	Session *ProviderSession
}

type CheckoutRequest struct {
	AmountMinorUnits   int64
	Currency           string
	ProductName        string
	ProductDescription string
	ReservationID      uuid.UUID
}

type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*ProviderSession, error)
	VerifyEvent(payload []byte, signatureHeader string) (*ProviderEvent, error)
}
