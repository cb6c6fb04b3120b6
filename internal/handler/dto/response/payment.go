package response

import (
	"room-reservation-api/internal/usecase/commands"
)

type CheckoutSessionResponse struct {
	SessionID      string `json:"sessionId"`
	SessionURL     string `json:"sessionUrl"`
	PublishableKey string `json:"publishableKey"`
}

func FromCheckoutSession(session *commands.CheckoutSession) *CheckoutSessionResponse {
	return &CheckoutSessionResponse{
		SessionID:      session.SessionID,
		SessionURL:     session.SessionURL,
		PublishableKey: session.PublishableKey,
	}
}

type PaymentConfirmationResponse struct {
	Confirmed bool `json:"confirmed"`
}
