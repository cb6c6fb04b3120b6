//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"room-reservation-api/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStayPeriod(t *testing.T) {
	checkIn := time.Date(2025, 6, 8, 15, 0, 0, 0, time.UTC)

	t.Run("valid period", func(t *testing.T) {
		period, err := reservation.NewStayPeriod(checkIn, checkIn.AddDate(0, 0, 2))
		require.NoError(t, err)
		assert.Equal(t, checkIn, period.CheckIn())
		assert.Equal(t, 2, period.Nights())
	})

	t.Run("overnight stay shorter than one night", func(t *testing.T) {
		late := time.Date(2025, 6, 8, 23, 0, 0, 0, time.UTC)
		_, err := reservation.NewStayPeriod(late, late.Add(2*time.Hour))
		require.ErrorIs(t, err, reservation.ErrStayTooShort)
	})

	t.Run("check-out equal to check-in", func(t *testing.T) {
		_, err := reservation.NewStayPeriod(checkIn, checkIn)
		require.ErrorIs(t, err, reservation.ErrInvalidStayPeriod)
	})

	t.Run("check-out before check-in", func(t *testing.T) {
		_, err := reservation.NewStayPeriod(checkIn, checkIn.AddDate(0, 0, -1))
		require.ErrorIs(t, err, reservation.ErrInvalidStayPeriod)
	})

	t.Run("normalizes to UTC", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		period, err := reservation.NewStayPeriod(checkIn.In(tokyo), checkIn.AddDate(0, 0, 1).In(tokyo))
		require.NoError(t, err)
		assert.Equal(t, time.UTC, period.CheckIn().Location())
		assert.True(t, period.CheckIn().Equal(checkIn))
	})
}

func TestStayPeriodOverlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 15, 0, 0, 0, time.UTC)
	}
	period := func(t *testing.T, from, to int) reservation.StayPeriod {
		t.Helper()
		p, err := reservation.NewStayPeriod(day(from), day(to))
		require.NoError(t, err)
		return p
	}

	cases := []struct {
		name     string
		a, b     reservation.StayPeriod
		overlaps bool
	}{
		{
			name:     "identical periods",
			a:        period(t, 1, 5),
			b:        period(t, 1, 5),
			overlaps: true,
		},
		{
			name:     "partial overlap",
			a:        period(t, 1, 5),
			b:        period(t, 3, 8),
			overlaps: true,
		},
		{
			name:     "one contains the other",
			a:        period(t, 1, 10),
			b:        period(t, 3, 5),
			overlaps: true,
		},
		{
			name:     "back-to-back stays do not overlap",
			a:        period(t, 1, 5),
			b:        period(t, 5, 8),
			overlaps: false,
		},
		{
			name:     "disjoint periods",
			a:        period(t, 1, 3),
			b:        period(t, 10, 12),
			overlaps: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.overlaps, c.a.Overlaps(c.b))
			assert.Equal(t, c.overlaps, c.b.Overlaps(c.a))
		})
	}
}
