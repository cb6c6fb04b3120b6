package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"room-reservation-api/internal/pkg/config"
	"room-reservation-api/internal/pkg/errs"
)

// Client sends transactional mail through a Brevo-compatible HTTP API.
type Client struct {
	cfg        config.MailConfig
	httpClient *http.Client
}

func NewClient(cfg config.MailConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type sendRequest struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

type party struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (c *Client) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	payload, err := json.Marshal(sendRequest{
		Sender:      party{Email: c.cfg.FromEmail, Name: c.cfg.FromName},
		To:          []party{{Email: recipient}},
		Subject:     subject,
		HTMLContent: htmlBody,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode mail payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "failed to build mail request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(err, "mail request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errs.Errorf("mail provider returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
