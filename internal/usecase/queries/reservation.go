package queries

import (
	"context"

	"room-reservation-api/internal/infra"
	"room-reservation-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrForbidden           = errs.New("caller does not own this reservation")
	ErrQueryFailed         = errs.New("query failed")
)

type ReservationReader interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListViewsByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetReservation(ctx context.Context, id, callerID uuid.UUID, isAdmin bool) (*ReservationView, error)
	ListMyReservations(ctx context.Context, callerID uuid.UUID) ([]*ReservationView, error)
	ListUserReservations(ctx context.Context, userID, callerID uuid.UUID, isAdmin bool) ([]*ReservationView, error)
}

type reservationQueries struct {
	reader ReservationReader
}

func NewReservationQueries(reader ReservationReader) ReservationQueries {
	return &reservationQueries{reader: reader}
}

func (q *reservationQueries) GetReservation(ctx context.Context, id, callerID uuid.UUID, isAdmin bool) (*ReservationView, error) {
	view, err := q.reader.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	if !isAdmin && view.UserID != callerID {
		return nil, ErrForbidden
	}

	return view, nil
}

func (q *reservationQueries) ListMyReservations(ctx context.Context, callerID uuid.UUID) ([]*ReservationView, error) {
	views, err := q.reader.ListViewsByUser(ctx, callerID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}

func (q *reservationQueries) ListUserReservations(ctx context.Context, userID, callerID uuid.UUID, isAdmin bool) ([]*ReservationView, error) {
	if !isAdmin && userID != callerID {
		return nil, ErrForbidden
	}

	views, err := q.reader.ListViewsByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}
