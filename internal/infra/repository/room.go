package repository

import (
	"context"

	"room-reservation-api/internal/infra"
	"room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/pkg/pgconv"
	"room-reservation-api/internal/usecase/commands"

	"github.com/google/uuid"
)

// Rooms are reference data for the reservation core: plain key lookups only.
type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(pool db.DBTX) *RoomRepository {
	return &RoomRepository{db: pool}
}

const selectRoomSQL = `
SELECT id, room_number, room_type, price_per_night_cents, is_active
FROM rooms
WHERE id = $1`

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.RoomSnapshot, error) {
	var snap commands.RoomSnapshot
	err := r.db.QueryRow(ctx, selectRoomSQL, id).Scan(
		&snap.ID, &snap.RoomNumber, &snap.RoomType, &snap.PricePerNightCents, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}

	return &snap, nil
}
