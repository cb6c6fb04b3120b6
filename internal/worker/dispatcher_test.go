//go:build unit

package worker_test

import (
	"context"
	"testing"
	"time"

	"room-reservation-api/internal/domain/mailqueue"
	"room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/pkg/clock"
	"room-reservation-api/internal/pkg/config"
	"room-reservation-api/internal/pkg/errs"
	"room-reservation-api/internal/worker"
	"room-reservation-api/tests/common/dbtest"
	commandsmock "room-reservation-api/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubMailer struct {
	sent    []string
	failFor map[string]error
}

func (m *stubMailer) Send(_ context.Context, recipient, _, _ string) error {
	if err, ok := m.failFor[recipient]; ok {
		return err
	}
	m.sent = append(m.sent, recipient)
	return nil
}

// countingTxRunner is a PassthroughTxRunner that counts transactions.
type countingTxRunner struct {
	calls int
}

func (r *countingTxRunner) Within(_ context.Context, fn func(tx db.DBTX) error) error {
	r.calls++
	return fn(nil)
}

func queueConfig() config.QueueConfig {
	return config.QueueConfig{
		MaxAttempts:   3,
		RetryBackoff:  5 * time.Minute,
		DrainInterval: 30 * time.Second,
		BatchSize:     2,
	}
}

func newJob(t *testing.T, recipient string, now time.Time) *mailqueue.Job {
	t.Helper()
	job, err := mailqueue.NewJob(recipient, "Booking Confirmation", "<p>body</p>",
		mailqueue.TypeConfirmation, nil, 3, now)
	require.NoError(t, err)
	return job
}

func TestDrainDue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("delivers every claimed job and records the outcome", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobs := commandsmock.NewMockEmailJobRepository(ctrl)
		mailer := &stubMailer{}
		clk := clock.NewMockClock(now)
		d := worker.NewDispatcher(jobs, mailer, dbtest.PassthroughTxRunner{}, clk, queueConfig())

		due := []*mailqueue.Job{
			newJob(t, "first@example.com", now),
		}

		jobs.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, now.Add(5*time.Minute), int32(2)).Return(due, nil)
		jobs.EXPECT().UpdateDeliveryState(gomock.Any(), gomock.Any(), due[0]).Return(nil)

		require.NoError(t, d.DrainDue(ctx))

		assert.Equal(t, []string{"first@example.com"}, mailer.sent)
		assert.Equal(t, mailqueue.StatusSent, due[0].Status)
		require.NotNil(t, due[0].SentAt)
		assert.Equal(t, now, *due[0].SentAt)
	})

	t.Run("one failing address does not block the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobs := commandsmock.NewMockEmailJobRepository(ctrl)
		mailer := &stubMailer{failFor: map[string]error{
			"bad@example.com": errs.New("mailbox unavailable"),
		}}
		clk := clock.NewMockClock(now)
		d := worker.NewDispatcher(jobs, mailer, dbtest.PassthroughTxRunner{}, clk, queueConfig())

		bad := newJob(t, "bad@example.com", now)
		good := newJob(t, "good@example.com", now)

		jobs.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, now.Add(5*time.Minute), int32(2)).
			Return([]*mailqueue.Job{bad, good}, nil)
		jobs.EXPECT().UpdateDeliveryState(gomock.Any(), gomock.Any(), bad).Return(nil)
		jobs.EXPECT().UpdateDeliveryState(gomock.Any(), gomock.Any(), good).Return(nil)
		// A full batch triggers a second pass; it comes back empty.
		jobs.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, now.Add(5*time.Minute), int32(2)).Return(nil, nil)

		require.NoError(t, d.DrainDue(ctx))

		assert.Equal(t, []string{"good@example.com"}, mailer.sent)
		assert.Equal(t, mailqueue.StatusRetrying, bad.Status)
		assert.Equal(t, int32(1), bad.Attempts)
		assert.Equal(t, now.Add(5*time.Minute), bad.ScheduledAt)
		assert.Equal(t, "mailbox unavailable", bad.LastError)
		assert.Equal(t, mailqueue.StatusSent, good.Status)
	})

	t.Run("repeated failures park the job as failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobs := commandsmock.NewMockEmailJobRepository(ctrl)
		mailer := &stubMailer{failFor: map[string]error{
			"bad@example.com": errs.New("mailbox unavailable"),
		}}
		clk := clock.NewMockClock(now)
		d := worker.NewDispatcher(jobs, mailer, dbtest.PassthroughTxRunner{}, clk, queueConfig())

		job := newJob(t, "bad@example.com", now)
		job.Attempts = 2

		jobs.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, now.Add(5*time.Minute), int32(2)).
			Return([]*mailqueue.Job{job}, nil)
		jobs.EXPECT().UpdateDeliveryState(gomock.Any(), gomock.Any(), job).Return(nil)

		require.NoError(t, d.DrainDue(ctx))

		assert.Equal(t, mailqueue.StatusFailed, job.Status)
		assert.Equal(t, int32(3), job.Attempts)
	})

	t.Run("keeps claiming while full batches come back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobs := commandsmock.NewMockEmailJobRepository(ctrl)
		mailer := &stubMailer{}
		clk := clock.NewMockClock(now)
		d := worker.NewDispatcher(jobs, mailer, dbtest.PassthroughTxRunner{}, clk, queueConfig())

		first := []*mailqueue.Job{newJob(t, "a@example.com", now), newJob(t, "b@example.com", now)}
		second := []*mailqueue.Job{newJob(t, "c@example.com", now)}

		gomock.InOrder(
			jobs.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, now.Add(5*time.Minute), int32(2)).Return(first, nil),
			jobs.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, now.Add(5*time.Minute), int32(2)).Return(second, nil),
		)
		jobs.EXPECT().UpdateDeliveryState(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).Times(3)

		require.NoError(t, d.DrainDue(ctx))
		assert.Len(t, mailer.sent, 3)
	})

	t.Run("claims in one transaction and records each outcome in its own", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobs := commandsmock.NewMockEmailJobRepository(ctrl)
		mailer := &stubMailer{}
		clk := clock.NewMockClock(now)
		tx := &countingTxRunner{}
		d := worker.NewDispatcher(jobs, mailer, tx, clk, queueConfig())

		a := newJob(t, "a@example.com", now)
		b := newJob(t, "b@example.com", now)

		jobs.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, now.Add(5*time.Minute), int32(2)).
			Return([]*mailqueue.Job{a, b}, nil)
		jobs.EXPECT().UpdateDeliveryState(gomock.Any(), gomock.Any(), a).Return(nil)
		jobs.EXPECT().UpdateDeliveryState(gomock.Any(), gomock.Any(), b).Return(nil)
		jobs.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, now.Add(5*time.Minute), int32(2)).Return(nil, nil)

		require.NoError(t, d.DrainDue(ctx))

		// One claim per pass plus one commit per job. Delivery happens in
		// between, outside any of them.
		assert.Equal(t, 4, tx.calls)
	})

	t.Run("a failed outcome write does not take earlier deliveries down with it", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobs := commandsmock.NewMockEmailJobRepository(ctrl)
		mailer := &stubMailer{}
		clk := clock.NewMockClock(now)
		d := worker.NewDispatcher(jobs, mailer, dbtest.PassthroughTxRunner{}, clk, queueConfig())

		first := newJob(t, "first@example.com", now)
		second := newJob(t, "second@example.com", now)

		jobs.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, now.Add(5*time.Minute), int32(2)).
			Return([]*mailqueue.Job{first, second}, nil)
		gomock.InOrder(
			jobs.EXPECT().UpdateDeliveryState(gomock.Any(), gomock.Any(), first).Return(nil),
			jobs.EXPECT().UpdateDeliveryState(gomock.Any(), gomock.Any(), second).
				Return(errs.New("connection reset")),
		)

		require.Error(t, d.DrainDue(ctx))

		// The first job's outcome was committed before the failure, so a
		// retry of the pass cannot deliver it twice.
		assert.Equal(t, mailqueue.StatusSent, first.Status)
		assert.Equal(t, []string{"first@example.com", "second@example.com"}, mailer.sent)
	})

	t.Run("claim failure surfaces as an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobs := commandsmock.NewMockEmailJobRepository(ctrl)
		clk := clock.NewMockClock(now)
		d := worker.NewDispatcher(jobs, &stubMailer{}, dbtest.PassthroughTxRunner{}, clk, queueConfig())

		jobs.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, now.Add(5*time.Minute), int32(2)).
			Return(nil, errs.New("connection reset"))

		require.Error(t, d.DrainDue(ctx))
	})
}

func TestWake(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctrl := gomock.NewController(t)
	jobs := commandsmock.NewMockEmailJobRepository(ctrl)
	clk := clock.NewMockClock(now)
	d := worker.NewDispatcher(jobs, &stubMailer{}, dbtest.PassthroughTxRunner{}, clk, queueConfig())

	// Wake never blocks, even when nothing is draining.
	for range 10 {
		d.Wake()
	}
}
