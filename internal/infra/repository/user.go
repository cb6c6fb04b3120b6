package repository

import (
	"context"

	"room-reservation-api/internal/infra"
	"room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/pkg/pgconv"
	"room-reservation-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(pool db.DBTX) *UserRepository {
	return &UserRepository{db: pool}
}

const selectUserByIDSQL = `
SELECT id, email, full_name, role, is_active
FROM users
WHERE id = $1`

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.UserSnapshot, error) {
	var snap commands.UserSnapshot
	err := r.db.QueryRow(ctx, selectUserByIDSQL, id).Scan(
		&snap.ID, &snap.Email, &snap.FullName, &snap.Role, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	return &snap, nil
}

const selectUserByEmailSQL = `
SELECT id, email, full_name, role, is_active
FROM users
WHERE email = $1`

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*commands.UserSnapshot, error) {
	var snap commands.UserSnapshot
	err := r.db.QueryRow(ctx, selectUserByEmailSQL, email).Scan(
		&snap.ID, &snap.Email, &snap.FullName, &snap.Role, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	return &snap, nil
}

const selectCredentialsByEmailSQL = `
SELECT id, email, full_name, role, is_active, password_hash
FROM users
WHERE email = $1`

func (r *UserRepository) FindCredentialsByEmail(ctx context.Context, email string) (*commands.UserSnapshot, string, error) {
	var (
		snap commands.UserSnapshot
		hash string
	)
	err := r.db.QueryRow(ctx, selectCredentialsByEmailSQL, email).Scan(
		&snap.ID, &snap.Email, &snap.FullName, &snap.Role, &snap.IsActive, &hash,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user", err)
	}

	return &snap, hash, nil
}
