//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"room-reservation-api/internal/domain/mailqueue"
	"room-reservation-api/internal/infra"
	"room-reservation-api/internal/pkg/clock"
	"room-reservation-api/internal/usecase/commands"
	"room-reservation-api/tests/common/dbtest"
	commandsmock "room-reservation-api/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type emailJobMocks struct {
	jobs  *commandsmock.MockEmailJobRepository
	waker *commandsmock.MockWaker
	clock *clock.MockClock
}

func newEmailJobCommands(t *testing.T) (commands.EmailJobCommands, *emailJobMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &emailJobMocks{
		jobs:  commandsmock.NewMockEmailJobRepository(ctrl),
		waker: commandsmock.NewMockWaker(ctrl),
		clock: clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
	return commands.NewEmailJobCommands(m.jobs, m.waker, dbtest.PassthroughTxRunner{}, m.clock), m
}

func failedJob(t *testing.T, now time.Time) *mailqueue.Job {
	t.Helper()
	job, err := mailqueue.NewJob(
		"guest@example.com", "Booking Confirmation", "<p>body</p>",
		mailqueue.TypeConfirmation, nil, 3, now.Add(-time.Hour),
	)
	require.NoError(t, err)
	job.Status = mailqueue.StatusFailed
	job.Attempts = 3
	job.LastError = "smtp relay refused connection"
	return job
}

func TestRetryJob(t *testing.T) {
	ctx := context.Background()

	t.Run("success: failed job goes back to pending", func(t *testing.T) {
		svc, m := newEmailJobCommands(t)
		job := failedJob(t, m.clock.Now())

		m.jobs.EXPECT().FindByID(gomock.Any(), gomock.Any(), job.ID).Return(job, nil)
		m.jobs.EXPECT().UpdateDeliveryState(gomock.Any(), gomock.Any(), job).
			DoAndReturn(func(_ context.Context, _ any, j *mailqueue.Job) error {
				assert.Equal(t, mailqueue.StatusPending, j.Status)
				assert.Equal(t, int32(0), j.Attempts)
				assert.Empty(t, j.LastError)
				assert.Equal(t, m.clock.Now(), j.ScheduledAt)
				return nil
			})
		m.waker.EXPECT().Wake()

		require.NoError(t, svc.RetryJob(ctx, job.ID))
	})

	t.Run("error: job is not in the failed state", func(t *testing.T) {
		svc, m := newEmailJobCommands(t)
		job := failedJob(t, m.clock.Now())
		job.Status = mailqueue.StatusSent

		m.jobs.EXPECT().FindByID(gomock.Any(), gomock.Any(), job.ID).Return(job, nil)

		require.ErrorIs(t, svc.RetryJob(ctx, job.ID), commands.ErrEmailJobNotFailed)
	})

	t.Run("error: missing job", func(t *testing.T) {
		svc, m := newEmailJobCommands(t)
		id := uuid.New()

		m.jobs.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("email job not found", nil, infra.KindNotFound))

		require.ErrorIs(t, svc.RetryJob(ctx, id), commands.ErrEmailJobNotFound)
	})
}
