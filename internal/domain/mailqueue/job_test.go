//go:build unit

package mailqueue_test

import (
	"errors"
	"testing"
	"time"

	"room-reservation-api/internal/domain/mailqueue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(t *testing.T, now time.Time) *mailqueue.Job {
	t.Helper()
	reservationID := uuid.New()
	job, err := mailqueue.NewJob(
		"guest@example.com",
		"Reservation confirmed",
		"<p>See you soon.</p>",
		mailqueue.TypeConfirmation,
		&reservationID,
		3,
		now,
	)
	require.NoError(t, err)
	return job
}

func TestNewJob(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("basic success case", func(t *testing.T) {
		job := newJob(t, now)

		assert.NotEqual(t, uuid.Nil, job.ID)
		assert.Equal(t, mailqueue.StatusPending, job.Status)
		assert.Equal(t, int32(0), job.Attempts)
		assert.Equal(t, int32(3), job.MaxAttempts)
		assert.Equal(t, now, job.ScheduledAt)
		assert.Nil(t, job.SentAt)
		assert.True(t, job.Status.IsDue())
	})

	t.Run("empty recipient", func(t *testing.T) {
		_, err := mailqueue.NewJob("", "subject", "body", mailqueue.TypeConfirmation, nil, 3, now)
		require.ErrorIs(t, err, mailqueue.ErrInvalidRecipient)
	})

	t.Run("unknown email type", func(t *testing.T) {
		_, err := mailqueue.NewJob("guest@example.com", "subject", "body", "carrier_pigeon", nil, 3, now)
		require.ErrorIs(t, err, mailqueue.ErrInvalidEmailType)
	})
}

func TestMarkSent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	job := newJob(t, now)

	sentAt := now.Add(time.Minute)
	job.MarkSent(sentAt)

	assert.Equal(t, mailqueue.StatusSent, job.Status)
	assert.Equal(t, int32(1), job.Attempts)
	require.NotNil(t, job.SentAt)
	assert.Equal(t, sentAt, *job.SentAt)
	assert.False(t, job.Status.IsDue())
}

func TestRecordFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	backoff := 5 * time.Minute
	deliveryErr := errors.New("smtp relay refused connection")

	t.Run("escalates to failed at max attempts", func(t *testing.T) {
		job := newJob(t, now)

		job.RecordFailure(deliveryErr, backoff, now)
		assert.Equal(t, mailqueue.StatusRetrying, job.Status)
		assert.Equal(t, int32(1), job.Attempts)
		assert.Equal(t, now.Add(backoff), job.ScheduledAt)
		assert.Equal(t, deliveryErr.Error(), job.LastError)
		assert.True(t, job.Status.IsDue())

		second := now.Add(backoff)
		job.RecordFailure(deliveryErr, backoff, second)
		assert.Equal(t, mailqueue.StatusRetrying, job.Status)
		assert.Equal(t, int32(2), job.Attempts)
		assert.Equal(t, second.Add(backoff), job.ScheduledAt)

		third := second.Add(backoff)
		job.RecordFailure(deliveryErr, backoff, third)
		assert.Equal(t, mailqueue.StatusFailed, job.Status)
		assert.Equal(t, int32(3), job.Attempts)
		assert.False(t, job.Status.IsDue())
	})

	t.Run("failed job does not reschedule", func(t *testing.T) {
		job := newJob(t, now)
		job.Status = mailqueue.StatusRetrying
		job.Attempts = 2
		scheduled := job.ScheduledAt

		job.RecordFailure(deliveryErr, backoff, now.Add(time.Hour))

		assert.Equal(t, mailqueue.StatusFailed, job.Status)
		assert.Equal(t, scheduled, job.ScheduledAt)
	})
}

func TestResetForRetry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("revives a failed job", func(t *testing.T) {
		job := newJob(t, now)
		job.Status = mailqueue.StatusFailed
		job.Attempts = 3
		job.LastError = "smtp relay refused connection"

		retryAt := now.Add(2 * time.Hour)
		require.NoError(t, job.ResetForRetry(retryAt))

		assert.Equal(t, mailqueue.StatusPending, job.Status)
		assert.Equal(t, int32(0), job.Attempts)
		assert.Empty(t, job.LastError)
		assert.Equal(t, retryAt, job.ScheduledAt)
	})

	t.Run("only failed jobs are retryable", func(t *testing.T) {
		for _, status := range []mailqueue.Status{
			mailqueue.StatusPending,
			mailqueue.StatusRetrying,
			mailqueue.StatusSent,
		} {
			job := newJob(t, now)
			job.Status = status
			require.ErrorIs(t, job.ResetForRetry(now), mailqueue.ErrJobNotRetryable)
		}
	})
}
