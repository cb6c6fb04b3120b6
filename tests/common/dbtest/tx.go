//go:build unit || e2e

package dbtest

import (
	"context"

	"room-reservation-api/internal/infra/db"
)

// PassthroughTxRunner satisfies commands.TxRunner without a database. The
// callback receives a nil DBTX, which is fine when the repositories inside
// are mocks that ignore it.
type PassthroughTxRunner struct{}

func (PassthroughTxRunner) Within(_ context.Context, fn func(tx db.DBTX) error) error {
	return fn(nil)
}
