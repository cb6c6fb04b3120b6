//go:build unit

package api_test

import (
	"bytes"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"room-reservation-api/internal/handler/api"
	resdto "room-reservation-api/internal/handler/dto/response"
	"room-reservation-api/internal/pkg/errs"
	"room-reservation-api/internal/usecase/commands"
	"room-reservation-api/tests/common/httptest"
	"room-reservation-api/tests/common/testutil"
	commandsmock "room-reservation-api/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	handler      *api.PaymentHandler
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", "guest")
		c.Next()
	}

	s.router.POST("/payments/checkout", authMiddleware, s.handler.CreateCheckoutSession)
	s.router.POST("/payments/confirm", authMiddleware, s.handler.ConfirmPayment)
	s.router.POST("/payments/webhook", s.handler.HandleWebhook)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) TestCreateCheckoutSession() {
	url := "/payments/checkout"
	reservationID := uuid.New()
	reqBody := map[string]any{"reservationId": reservationID.String()}

	s.Run("success: returns 200 OK with the session", func() {
		s.mockCommands.EXPECT().CreateCheckoutSession(gomock.Any(), commands.CreateCheckoutParams{
			ReservationID: reservationID,
		}).Return(&commands.CheckoutSession{
			SessionID:      "cs_test_123",
			SessionURL:     "https://pay.example.com/cs_test_123",
			PublishableKey: "pk_test_unit",
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.CheckoutSessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cs_test_123", response.SessionID)
		s.Equal("https://pay.example.com/cs_test_123", response.SessionURL)
		s.Equal("pk_test_unit", response.PublishableKey)
	})

	s.Run("success: forwards the caller's amount and currency", func() {
		s.mockCommands.EXPECT().CreateCheckoutSession(gomock.Any(), commands.CreateCheckoutParams{
			ReservationID:    reservationID,
			AmountMinorUnits: 45000,
			Currency:         "eur",
		}).Return(&commands.CheckoutSession{SessionID: "cs_test_456"}, nil).Times(1)

		requestMap := testutil.DtoMap(s.T(), reqBody,
			testutil.Field("amountMinorUnits", 45000),
			testutil.Field("currency", "eur"),
		)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")

		var response resdto.CheckoutSessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cs_test_456", response.SessionID)
	})

	s.Run("error: 400 Bad Request for missing reservationId", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("reservationId", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "reservation not found",
				commandsError:  commands.ErrReservationNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Reservation not found",
			},
			{
				name:           "not payable",
				commandsError:  commands.ErrReservationNotPayable,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "not awaiting payment",
			},
			{
				name:           "provider failure",
				commandsError:  commands.ErrPaymentProviderFailed,
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "Payment provider unavailable",
			},
			{
				name:           "amount mismatch",
				commandsError:  commands.ErrAmountMismatch,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Amount does not match the reservation price",
			},
			{
				name:           "invalid currency",
				commandsError:  commands.ErrInvalidCurrency,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid currency code",
			},
			{
				name:           "internal error",
				commandsError:  errs.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *PaymentHandlerTestSuite) TestConfirmPayment() {
	url := "/payments/confirm"
	reqBody := map[string]any{"sessionId": "cs_test_123"}

	s.Run("success: returns the confirmation outcome", func() {
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), "cs_test_123").
			Return(true, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.PaymentConfirmationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Confirmed)
	})

	s.Run("error: 402 Payment Required when the session was not paid", func() {
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), "cs_test_123").
			Return(false, commands.ErrPaymentNotCompleted).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusPaymentRequired, "Payment has not completed")
	})

	s.Run("error: 400 Bad Request for missing sessionId", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *PaymentHandlerTestSuite) TestHandleWebhook() {
	url := "/payments/webhook"
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	signature := "t=1748779200,v1=deadbeef"

	performWebhook := func(body []byte, signatureHeader string) *nethttptest.ResponseRecorder {
		req := nethttptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if signatureHeader != "" {
			req.Header.Set("Stripe-Signature", signatureHeader)
		}
		rec := nethttptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec
	}

	s.Run("success: passes payload and signature through", func() {
		s.mockCommands.EXPECT().HandleProviderEvent(gomock.Any(), payload, signature).
			Return(true, nil).Times(1)

		rec := performWebhook(payload, signature)

		var response struct {
			Received  bool `json:"received"`
			Confirmed bool `json:"confirmed"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Received)
		s.True(response.Confirmed)
	})

	s.Run("success: ignored event still returns 200", func() {
		s.mockCommands.EXPECT().HandleProviderEvent(gomock.Any(), payload, signature).
			Return(false, nil).Times(1)

		rec := performWebhook(payload, signature)

		var response struct {
			Received  bool `json:"received"`
			Confirmed bool `json:"confirmed"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Received)
		s.False(response.Confirmed)
	})

	s.Run("error: 500 on processing failure so the provider redelivers", func() {
		s.mockCommands.EXPECT().HandleProviderEvent(gomock.Any(), payload, signature).
			Return(false, errs.New("database error")).Times(1)

		rec := performWebhook(payload, signature)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}
