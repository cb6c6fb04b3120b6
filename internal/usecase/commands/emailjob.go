package commands

import (
	"context"

	"room-reservation-api/internal/infra"
	"room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/pkg/clock"
	"room-reservation-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmailJobNotFound  = errs.New("email job not found")
	ErrEmailJobNotFailed = errs.New("only failed jobs can be re-enqueued")
)

type EmailJobCommands interface {
	RetryJob(ctx context.Context, id uuid.UUID) error
}

type emailJobCommands struct {
	jobs  EmailJobRepository
	waker Waker
	tx    TxRunner
	clock clock.Clock
}

func NewEmailJobCommands(jobs EmailJobRepository, waker Waker, tx TxRunner, clk clock.Clock) EmailJobCommands {
	return &emailJobCommands{jobs: jobs, waker: waker, tx: tx, clock: clk}
}

// RetryJob puts a job that exhausted its attempts back on the queue as an
// operator action. The attempt counter starts over.
func (c *emailJobCommands) RetryJob(ctx context.Context, id uuid.UUID) error {
	err := c.tx.Within(ctx, func(tx db.DBTX) error {
		job, err := c.jobs.FindByID(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrEmailJobNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := job.ResetForRetry(c.clock.Now()); err != nil {
			return errs.Mark(err, ErrEmailJobNotFailed)
		}

		if err := c.jobs.UpdateDeliveryState(ctx, tx, job); err != nil {
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
