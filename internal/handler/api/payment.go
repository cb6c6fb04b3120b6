package api

import (
	"errors"
	"io"
	"net/http"

	reqdto "room-reservation-api/internal/handler/dto/request"
	resdto "room-reservation-api/internal/handler/dto/response"
	"room-reservation-api/internal/handler/httperr"
	"room-reservation-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	payments commands.PaymentCommands
}

func NewPaymentHandler(payments commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// @Summary Create checkout session
// @Description Open a hosted payment page for a pending reservation
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCheckoutRequest true "Checkout request"
// @Success 200 {object} resdto.CheckoutSessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /payments/checkout [post]
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req reqdto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	session, err := h.payments.CreateCheckoutSession(c.Request.Context(), commands.CreateCheckoutParams{
		ReservationID:      req.ReservationID,
		AmountMinorUnits:   req.AmountMinorUnits,
		Currency:           req.Currency,
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, commands.ErrReservationNotPayable):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation is not awaiting payment", nil)
		case errors.Is(err, commands.ErrAmountMismatch):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Amount does not match the reservation price", nil)
		case errors.Is(err, commands.ErrInvalidCurrency):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid currency code", nil)
		case errors.Is(err, commands.ErrPaymentProviderFailed):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment provider unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCheckoutSession(session))
}

// @Summary Confirm payment
// @Description Verify a checkout session with the provider and confirm the reservation
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ConfirmPaymentRequest true "Session to verify"
// @Success 200 {object} resdto.PaymentConfirmationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /payments/confirm [post]
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req reqdto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	confirmed, err := h.payments.ConfirmPayment(c.Request.Context(), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPaymentNotCompleted):
			httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Payment has not completed", nil)
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, commands.ErrPaymentProviderFailed):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment provider unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.PaymentConfirmationResponse{Confirmed: confirmed})
}

// @Summary Payment webhook
// @Description Receive signed payment events from the provider
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} httperr.Response
// @Router /payments/webhook [post]
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unable to read payload", nil)
		return
	}

	confirmed, err := h.payments.HandleProviderEvent(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		// The provider retries on non-2xx; a genuine processing failure is
		// worth a redelivery.
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "confirmed": confirmed})
}
