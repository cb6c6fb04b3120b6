//go:build unit

package mail_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"room-reservation-api/internal/infra/mail"
	"room-reservation-api/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mailConfig(endpoint string) config.MailConfig {
	return config.MailConfig{
		APIKey:    "unit-test-key",
		Endpoint:  endpoint,
		FromEmail: "reservations@example.com",
		FromName:  "Room Reservations",
		Timeout:   5 * time.Second,
	}
}

func TestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("success: sends the expected payload and headers", func(t *testing.T) {
		var captured struct {
			Sender struct {
				Email string `json:"email"`
				Name  string `json:"name"`
			} `json:"sender"`
			To []struct {
				Email string `json:"email"`
			} `json:"to"`
			Subject     string `json:"subject"`
			HTMLContent string `json:"htmlContent"`
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "unit-test-key", r.Header.Get("api-key"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := mail.NewClient(mailConfig(server.URL))
		err := client.Send(ctx, "guest@example.com", "Booking Confirmation", "<p>Welcome</p>")
		require.NoError(t, err)

		assert.Equal(t, "reservations@example.com", captured.Sender.Email)
		assert.Equal(t, "Room Reservations", captured.Sender.Name)
		require.Len(t, captured.To, 1)
		assert.Equal(t, "guest@example.com", captured.To[0].Email)
		assert.Equal(t, "Booking Confirmation", captured.Subject)
		assert.Equal(t, "<p>Welcome</p>", captured.HTMLContent)
	})

	t.Run("error: non-2xx response surfaces the provider message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"unauthorized"}`))
		}))
		defer server.Close()

		client := mail.NewClient(mailConfig(server.URL))
		err := client.Send(ctx, "guest@example.com", "subject", "body")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "unauthorized")
	})

	t.Run("error: unreachable endpoint", func(t *testing.T) {
		client := mail.NewClient(mailConfig("http://127.0.0.1:1"))
		err := client.Send(ctx, "guest@example.com", "subject", "body")
		require.Error(t, err)
	})
}
