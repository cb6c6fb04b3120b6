//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"room-reservation-api/internal/domain/reservation"
	"room-reservation-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ReservationBuilder)
	errIs  error
}

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		period, err := reservation.NewStayPeriod(b.CheckIn, b.CheckOut)
		require.NoError(t, err)

		actual, err := reservation.NewReservation(b.RoomID, b.UserID, period, b.Guests, b.CreatedAt)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, reservation.StatusPending, actual.Status())
		assert.Equal(t, b.Guests, actual.Guests())
		assert.Equal(t, b.CreatedAt, actual.CreatedAt())
		assert.Nil(t, actual.CancelledAt())
		assert.Empty(t, actual.CancellationReason())
		assert.Equal(t, 3, actual.Nights())
	})

	t.Run("guest count validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "single guest",
				mutate: func(b *builder.ReservationBuilder) { b.WithGuests(1) },
			},
			{
				name:   "zero guests",
				mutate: func(b *builder.ReservationBuilder) { b.WithGuests(0) },
				errIs:  reservation.ErrInvalidGuestCount,
			},
			{
				name:   "negative guests",
				mutate: func(b *builder.ReservationBuilder) { b.WithGuests(-2) },
				errIs:  reservation.ErrInvalidGuestCount,
			},
		})
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		period, err := reservation.NewStayPeriod(b.CheckIn, b.CheckOut)
		require.NoError(t, err)

		r1, err1 := reservation.NewReservation(b.RoomID, b.UserID, period, b.Guests, b.CreatedAt)
		r2, err2 := reservation.NewReservation(b.RoomID, b.UserID, period, b.Guests, b.CreatedAt)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, r1.ID(), r2.ID())
	})
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		name       string
		from       reservation.Status
		errIs      error
		wantStatus reservation.Status
	}{
		{
			name:       "pending becomes confirmed",
			from:       reservation.StatusPending,
			wantStatus: reservation.StatusConfirmed,
		},
		{
			name:       "already confirmed",
			from:       reservation.StatusConfirmed,
			errIs:      reservation.ErrAlreadyConfirmed,
			wantStatus: reservation.StatusConfirmed,
		},
		{
			name:       "cancelled cannot be confirmed",
			from:       reservation.StatusCancelled,
			errIs:      reservation.ErrNotPending,
			wantStatus: reservation.StatusCancelled,
		},
		{
			name:       "checked in cannot be confirmed",
			from:       reservation.StatusCheckedIn,
			errIs:      reservation.ErrNotPending,
			wantStatus: reservation.StatusCheckedIn,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewReservationBuilder().WithStatus(c.from).BuildDomain()
			require.NoError(t, err)

			err = actual.Confirm()
			if c.errIs == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, c.errIs)
			}
			assert.Equal(t, c.wantStatus, actual.Status())
		})
	}
}

func TestCancel(t *testing.T) {
	checkIn := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 3)

	newEntity := func(t *testing.T, status reservation.Status) *reservation.Reservation {
		t.Helper()
		actual, err := builder.NewReservationBuilder().
			WithStay(checkIn, checkOut).
			WithStatus(status).
			BuildDomain()
		require.NoError(t, err)
		return actual
	}

	t.Run("cancellation window", func(t *testing.T) {
		cases := []struct {
			name  string
			now   time.Time
			errIs error
		}{
			{
				name: "well before check-in",
				now:  checkIn.Add(-72 * time.Hour),
			},
			{
				name: "just outside the lead time",
				now:  checkIn.Add(-reservation.CancellationLeadTime - time.Second),
			},
			{
				name:  "exactly at the lead time boundary",
				now:   checkIn.Add(-reservation.CancellationLeadTime),
				errIs: nil,
			},
			{
				name:  "inside the lead time",
				now:   checkIn.Add(-reservation.CancellationLeadTime + time.Second),
				errIs: reservation.ErrCancellationWindowShut,
			},
			{
				name:  "after check-in",
				now:   checkIn.Add(time.Hour),
				errIs: reservation.ErrCancellationWindowShut,
			},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				actual := newEntity(t, reservation.StatusConfirmed)

				err := actual.ValidateCancellationAt(c.now)
				if c.errIs == nil {
					require.NoError(t, err)
					assert.True(t, actual.CanCancelAt(c.now))
				} else {
					require.ErrorIs(t, err, c.errIs)
					assert.False(t, actual.CanCancelAt(c.now))
				}
			})
		}
	})

	t.Run("status guards", func(t *testing.T) {
		now := checkIn.Add(-72 * time.Hour)

		actual := newEntity(t, reservation.StatusCancelled)
		require.ErrorIs(t, actual.ValidateCancellationAt(now), reservation.ErrAlreadyCancelled)

		actual = newEntity(t, reservation.StatusCheckedIn)
		require.ErrorIs(t, actual.ValidateCancellationAt(now), reservation.ErrAlreadyCheckedIn)
	})

	t.Run("cancel records timestamp and reason", func(t *testing.T) {
		now := checkIn.Add(-72 * time.Hour)
		actual := newEntity(t, reservation.StatusConfirmed)

		require.NoError(t, actual.Cancel(now, "Change of plans"))

		assert.Equal(t, reservation.StatusCancelled, actual.Status())
		require.NotNil(t, actual.CancelledAt())
		assert.Equal(t, now, *actual.CancelledAt())
		assert.Equal(t, "Change of plans", actual.CancellationReason())
		assert.False(t, actual.IsActive())
	})

	t.Run("cancel inside the window leaves the entity untouched", func(t *testing.T) {
		now := checkIn.Add(-time.Hour)
		actual := newEntity(t, reservation.StatusConfirmed)

		require.ErrorIs(t, actual.Cancel(now, "too late"), reservation.ErrCancellationWindowShut)

		assert.Equal(t, reservation.StatusConfirmed, actual.Status())
		assert.Nil(t, actual.CancelledAt())
	})
}

func TestReconstructReservation(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		actual, err := builder.NewReservationBuilder().WithStatus("teleported").BuildDomain()
		require.Nil(t, actual)
		require.ErrorIs(t, err, reservation.ErrInvalidStatus)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := builder.NewReservationBuilder().With(c.mutate)
			period, err := reservation.NewStayPeriod(b.CheckIn, b.CheckOut)
			require.NoError(t, err)

			actual, err := reservation.NewReservation(b.RoomID, b.UserID, period, b.Guests, b.CreatedAt)
			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
