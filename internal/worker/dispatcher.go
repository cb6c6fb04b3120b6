package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"room-reservation-api/internal/domain/mailqueue"
	"room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/pkg/clock"
	"room-reservation-api/internal/pkg/config"
	"room-reservation-api/internal/usecase/commands"
)

// Mailer delivers a single message to a recipient.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

// Dispatcher drains the email job queue in the background. It wakes on a
// fixed interval and whenever a producer commits a new job and pokes it.
// Claiming uses SKIP LOCKED and pushes each job's scheduled_at forward as a
// lease, so multiple instances can run against the same queue without
// stepping on each other and without holding locks across delivery.
type Dispatcher struct {
	jobs   commands.EmailJobRepository
	mailer Mailer
	tx     commands.TxRunner
	clock  clock.Clock
	cfg    config.QueueConfig

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewDispatcher(
	jobs commands.EmailJobRepository,
	mailer Mailer,
	tx commands.TxRunner,
	clk clock.Clock,
	cfg config.QueueConfig,
) *Dispatcher {
	return &Dispatcher{
		jobs:   jobs,
		mailer: mailer,
		tx:     tx,
		clock:  clk,
		cfg:    cfg,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Wake requests a drain pass. Non-blocking; a pass already requested
// absorbs further wakes.
func (d *Dispatcher) Wake() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Start launches the drain loop. Call Stop to shut it down.
func (d *Dispatcher) Start() {
	d.once.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		d.cancel = cancel
		go d.run(ctx)
	})
}

// Stop cancels the loop and waits for the in-flight pass to finish.
func (d *Dispatcher) Stop(ctx context.Context) error {
	if d.cancel == nil {
		return nil
	}
	d.cancel()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)

	ticker := time.NewTicker(d.cfg.DrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-d.wake:
		}

		if err := d.DrainDue(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Error("email drain pass failed", "error", err)
		}
	}
}

// DrainDue claims every due job up to the batch size and attempts delivery.
// Delivery outcome is recorded per job; one bad address never blocks the
// rest of the batch.
func (d *Dispatcher) DrainDue(ctx context.Context) error {
	for {
		n, err := d.drainBatch(ctx)
		if err != nil {
			return err
		}
		if n < int(d.cfg.BatchSize) {
			return nil
		}
	}
}

// drainBatch claims one batch in a short transaction, delivers outside any
// transaction, then records each outcome on its own. Delivery can stall on a
// slow provider, so it must never hold row locks; recording per job keeps an
// already-delivered outcome committed even when a later write fails, which
// would otherwise resend the whole batch.
func (d *Dispatcher) drainBatch(ctx context.Context) (int, error) {
	var due []*mailqueue.Job
	err := d.tx.Within(ctx, func(tx db.DBTX) error {
		now := d.clock.Now()
		var err error
		due, err = d.jobs.ClaimDue(ctx, tx, now, now.Add(d.cfg.RetryBackoff), d.cfg.BatchSize)
		return err
	})
	if err != nil {
		return 0, err
	}

	for _, job := range due {
		d.deliver(ctx, job)

		err := d.tx.Within(ctx, func(tx db.DBTX) error {
			return d.jobs.UpdateDeliveryState(ctx, tx, job)
		})
		if err != nil {
			return len(due), err
		}
	}

	return len(due), nil
}

func (d *Dispatcher) deliver(ctx context.Context, job *mailqueue.Job) {
	err := d.mailer.Send(ctx, job.Recipient, job.Subject, job.Body)
	if err == nil {
		job.MarkSent(d.clock.Now())
		return
	}

	job.RecordFailure(err, d.cfg.RetryBackoff, d.clock.Now())
	slog.Warn("email delivery failed",
		"job_id", job.ID,
		"attempts", job.Attempts,
		"status", job.Status,
		"error", err,
	)
}
