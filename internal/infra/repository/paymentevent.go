package repository

import (
	"context"
	"time"

	"room-reservation-api/internal/infra"
	"room-reservation-api/internal/infra/db"

	"github.com/google/uuid"
)

// PaymentEventRepository records processed provider events and checkout
// sessions so replayed confirmations stay side-effect free.
type PaymentEventRepository struct {
	db db.DBTX
}

func NewPaymentEventRepository(pool db.DBTX) *PaymentEventRepository {
	return &PaymentEventRepository{db: pool}
}

const claimPaymentEventSQL = `
INSERT INTO payment_events (event_key, reservation_id, processed_at)
VALUES ($1, $2, $3)
ON CONFLICT (event_key) DO NOTHING`

// TryClaim returns false when the event key was already processed.
func (r *PaymentEventRepository) TryClaim(ctx context.Context, tx db.DBTX, eventKey string, reservationID uuid.UUID, now time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, claimPaymentEventSQL, eventKey, reservationID, now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim payment event", err)
	}

	return tag.RowsAffected() > 0, nil
}
