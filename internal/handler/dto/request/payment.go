package request

import (
	"github.com/google/uuid"
)

type CreateCheckoutRequest struct {
	ReservationID      uuid.UUID `json:"reservationId" binding:"required"`
	AmountMinorUnits   int64     `json:"amountMinorUnits,omitempty" binding:"omitempty,min=1"`
	Currency           string    `json:"currency,omitempty"`
	ProductName        string    `json:"productName,omitempty"`
	ProductDescription string    `json:"productDescription,omitempty"`
}

type ConfirmPaymentRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}
