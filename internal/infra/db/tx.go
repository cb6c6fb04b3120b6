package db

import (
	"context"
	"errors"
	"log/slog"

	"room-reservation-api/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTransactionBegin  = errs.New("failed to begin transaction")
	ErrTransactionCommit = errs.New("failed to commit transaction")
)

// Runner executes units of work against the pool, each inside its own
// transaction.
type Runner struct {
	pool *pgxpool.Pool
}

func NewRunner(pool *pgxpool.Pool) *Runner {
	return &Runner{pool: pool}
}

// Within runs fn inside a single transaction; any error rolls everything
// back so a rejected operation leaves no partial write.
func (r *Runner) Within(ctx context.Context, fn func(tx DBTX) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrTransactionBegin)
	}

	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrTransactionCommit)
	}

	return nil
}
