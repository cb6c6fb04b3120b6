package reservation

import (
	"errors"
	"time"
)

var (
	ErrInvalidStayPeriod = errors.New("check-out date must be after check-in date")
	ErrStayTooShort      = errors.New("stay must cover at least one night")
)

// StayPeriod is the half-open interval [checkIn, checkOut). The check-out
// date itself is excluded, so back-to-back stays on the same room do not
// conflict.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	checkIn = checkIn.UTC()
	checkOut = checkOut.UTC()

	if !checkOut.After(checkIn) {
		return StayPeriod{}, ErrInvalidStayPeriod
	}

	p := StayPeriod{checkIn: checkIn, checkOut: checkOut}
	if p.Nights() < 1 {
		return StayPeriod{}, ErrStayTooShort
	}

	return p, nil
}

func (p StayPeriod) CheckIn() time.Time {
	return p.checkIn
}

func (p StayPeriod) CheckOut() time.Time {
	return p.checkOut
}

// Nights is the stay length in whole days.
func (p StayPeriod) Nights() int {
	return int(p.checkOut.Sub(p.checkIn).Hours() / 24)
}

// Overlaps reports whether the two half-open intervals intersect. A stay
// starting exactly when another ends does not overlap.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && p.checkOut.After(other.checkIn)
}
