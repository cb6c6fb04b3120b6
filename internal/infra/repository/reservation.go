package repository

import (
	"context"
	"time"

	"room-reservation-api/internal/domain/reservation"
	"room-reservation-api/internal/infra"
	"room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/pkg/pgconv"
	"room-reservation-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(pool db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: pool}
}

const insertReservationSQL = `
INSERT INTO reservations (id, room_id, user_id, check_in, check_out, nights, guests, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Create inserts the reservation. The reservations_no_overlap exclusion
// constraint is the final arbiter against concurrent overlapping inserts;
// a violation surfaces as KindConflict.
func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	_, err := tx.Exec(ctx, insertReservationSQL,
		res.ID(),
		res.RoomID(),
		res.UserID(),
		res.Period().CheckIn(),
		res.Period().CheckOut(),
		res.Nights(),
		res.Guests(),
		res.Status().String(),
		res.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}

	return nil
}

const selectReservationSQL = `
SELECT id, room_id, user_id, check_in, check_out, guests, status, created_at, cancelled_at, cancellation_reason
FROM reservations
WHERE id = $1`

func (r *ReservationRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row := tx.QueryRow(ctx, selectReservationSQL, id)

	var (
		resID, roomID, userID uuid.UUID
		checkIn, checkOut     time.Time
		guests                int
		status                string
		createdAt             time.Time
		cancelledAt           *time.Time
		cancellationReason    string
	)
	err := row.Scan(&resID, &roomID, &userID, &checkIn, &checkOut, &guests, &status, &createdAt, &cancelledAt, &cancellationReason)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	period, err := reservation.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid stay period", err)
	}

	entity, err := reservation.ReconstructReservation(
		resID, roomID, userID, period, guests, reservation.Status(status), createdAt, cancelledAt, cancellationReason,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid status", err)
	}

	return entity, nil
}

const selectActiveByRoomSQL = `
SELECT id, room_id, user_id, check_in, check_out, guests, status, created_at, cancelled_at, cancellation_reason
FROM reservations
WHERE room_id = $1
  AND status NOT IN ('cancelled', 'no_show')`

// ListActiveByRoom returns every reservation that still occupies the room.
// Overlap against a requested stay is decided by the domain.
func (r *ReservationRepository) ListActiveByRoom(ctx context.Context, tx db.DBTX, roomID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := tx.Query(ctx, selectActiveByRoomSQL, roomID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		var (
			resID, rmID, userID uuid.UUID
			checkIn, checkOut   time.Time
			guests              int
			status              string
			createdAt           time.Time
			cancelledAt         *time.Time
			cancellationReason  string
		)
		if err := rows.Scan(&resID, &rmID, &userID, &checkIn, &checkOut, &guests, &status, &createdAt, &cancelledAt, &cancellationReason); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}

		period, err := reservation.NewStayPeriod(checkIn, checkOut)
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has invalid stay period", err)
		}

		entity, err := reservation.ReconstructReservation(
			resID, rmID, userID, period, guests, reservation.Status(status), createdAt, cancelledAt, cancellationReason,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has invalid status", err)
		}

		result = append(result, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}

	return result, nil
}

const updateCancelledSQL = `
UPDATE reservations
SET status = $2, cancelled_at = $3, cancellation_reason = $4
WHERE id = $1`

// UpdateCancelled persists the cancellation as a field-level partial update
// keyed by id. Cancellation never deletes the row.
func (r *ReservationRepository) UpdateCancelled(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	tag, err := tx.Exec(ctx, updateCancelledSQL,
		res.ID(), res.Status().String(), res.CancelledAt(), res.CancellationReason())
	if err != nil {
		return infra.WrapRepoErr("failed to cancel reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}

	return nil
}

const confirmIfPendingSQL = `
UPDATE reservations
SET status = 'confirmed'
WHERE id = $1 AND status = 'pending'`

// ConfirmIfPending applies pending->confirmed exactly once. The condition on
// the current status makes replayed confirmations a no-op; the caller skips
// side effects when no row transitioned.
func (r *ReservationRepository) ConfirmIfPending(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx, confirmIfPendingSQL, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to confirm reservation", err)
	}

	return tag.RowsAffected() > 0, nil
}

const selectReservationViewSQL = `
SELECT r.id, r.room_id, rm.room_number, r.user_id, u.email, u.full_name,
       r.check_in, r.check_out, r.nights, r.guests, r.status, r.created_at,
       r.cancelled_at, NULLIF(r.cancellation_reason, '')
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id
JOIN users u ON u.id = r.user_id
WHERE r.id = $1`

func (r *ReservationRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, selectReservationViewSQL, id)

	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation view", err)
	}

	return view, nil
}

const selectReservationViewsByUserSQL = `
SELECT r.id, r.room_id, rm.room_number, r.user_id, u.email, u.full_name,
       r.check_in, r.check_out, r.nights, r.guests, r.status, r.created_at,
       r.cancelled_at, NULLIF(r.cancellation_reason, '')
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id
JOIN users u ON u.id = r.user_id
WHERE r.user_id = $1
ORDER BY r.created_at DESC`

func (r *ReservationRepository) ListViewsByUser(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, selectReservationViewsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var result []*queries.ReservationView
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation view", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation views", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservationView(row rowScanner) (*queries.ReservationView, error) {
	var view queries.ReservationView
	err := row.Scan(
		&view.ID, &view.RoomID, &view.RoomNumber, &view.UserID, &view.UserEmail, &view.UserFullName,
		&view.CheckIn, &view.CheckOut, &view.Nights, &view.Guests, &view.Status, &view.CreatedAt,
		&view.CancelledAt, &view.CancellationReason,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
