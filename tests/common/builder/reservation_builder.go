//go:build unit || e2e

package builder

import (
	"time"

	domreservation "room-reservation-api/internal/domain/reservation"
	"room-reservation-api/internal/usecase/commands"
	"room-reservation-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID           uuid.UUID
	RoomID       uuid.UUID
	RoomNumber   string
	UserID       uuid.UUID
	UserEmail    string
	UserFullName string
	CheckIn      time.Time
	CheckOut     time.Time
	Guests       int
	Status       domreservation.Status
	CreatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:           uuid.New(),
		RoomID:       uuid.New(),
		RoomNumber:   "204",
		UserID:       uuid.New(),
		UserEmail:    "guest@example.com",
		UserFullName: "Jordan Guest",
		CheckIn:      now.AddDate(0, 0, 7),
		CheckOut:     now.AddDate(0, 0, 10),
		Guests:       2,
		Status:       domreservation.StatusPending,
		CreatedAt:    now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithStay(checkIn, checkOut time.Time) *ReservationBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *ReservationBuilder) WithGuests(guests int) *ReservationBuilder {
	b.Guests = guests
	return b
}

func (b *ReservationBuilder) WithStatus(status domreservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	period, err := domreservation.NewStayPeriod(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}

	return domreservation.ReconstructReservation(
		b.ID, b.RoomID, b.UserID,
		period, b.Guests, b.Status,
		b.CreatedAt, nil, "",
	)
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	nights := int32(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	return &queries.ReservationView{
		ID:           b.ID,
		RoomID:       b.RoomID,
		RoomNumber:   b.RoomNumber,
		UserID:       b.UserID,
		UserEmail:    b.UserEmail,
		UserFullName: b.UserFullName,
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		Nights:       nights,
		Guests:       int32(b.Guests),
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildCreateParams() commands.CreateReservationParams {
	return commands.CreateReservationParams{
		UserID:   b.UserID,
		RoomID:   b.RoomID,
		CheckIn:  b.CheckIn,
		CheckOut: b.CheckOut,
		Guests:   b.Guests,
	}
}

func (b *ReservationBuilder) BuildRoomSnapshot() *commands.RoomSnapshot {
	return &commands.RoomSnapshot{
		ID:                 b.RoomID,
		RoomNumber:         b.RoomNumber,
		RoomType:           "double",
		PricePerNightCents: 15000,
		IsActive:           true,
	}
}

func (b *ReservationBuilder) BuildUserSnapshot() *commands.UserSnapshot {
	return &commands.UserSnapshot{
		ID:       b.UserID,
		Email:    b.UserEmail,
		FullName: b.UserFullName,
		Role:     "guest",
		IsActive: true,
	}
}
