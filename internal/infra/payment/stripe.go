package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"room-reservation-api/internal/pkg/clock"
	"room-reservation-api/internal/pkg/config"
	"room-reservation-api/internal/pkg/errs"
	"room-reservation-api/internal/usecase/commands"
)

const signatureTolerance = 5 * time.Minute

var (
	ErrBadSignature   = errs.New("webhook signature verification failed")
	ErrStaleSignature = errs.New("webhook signature timestamp outside tolerance")
)

// Client talks to a Stripe-compatible checkout API.
type Client struct {
	cfg        config.PaymentConfig
	clock      clock.Clock
	httpClient *http.Client
}

func NewClient(cfg config.PaymentConfig, clk clock.Clock) *Client {
	return &Client{
		cfg:        cfg,
		clock:      clk,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type sessionPayload struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	Metadata      struct {
		ReservationID string `json:"reservation_id"`
	} `json:"metadata"`
}

type eventPayload struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object sessionPayload `json:"object"`
	} `json:"data"`
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req commands.CheckoutRequest) (*commands.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", c.cfg.SuccessURL)
	form.Set("cancel_url", c.cfg.CancelURL)
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][product_data][name]", req.ProductName)
	form.Set("line_items[0][price_data][product_data][description]", req.ProductDescription)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountMinorUnits, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("metadata[reservation_id]", req.ReservationID.String())

	var session sessionPayload
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()), &session); err != nil {
		return nil, err
	}

	return &commands.CheckoutSession{
		SessionID:      session.ID,
		SessionURL:     session.URL,
		PublishableKey: c.cfg.PublishableKey,
	}, nil
}

func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*commands.ProviderSession, error) {
	var session sessionPayload
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &session); err != nil {
		return nil, err
	}

	return &commands.ProviderSession{
		ID:            session.ID,
		PaymentStatus: session.PaymentStatus,
		ReservationID: session.Metadata.ReservationID,
	}, nil
}

// VerifyEvent checks the signature header against the webhook secret and
// decodes the event. The scheme is the provider's: the header carries a
// timestamp and one or more v1 signatures, each an HMAC-SHA256 over
// "<timestamp>.<payload>".
func (c *Client) VerifyEvent(payload []byte, signatureHeader string) (*commands.ProviderEvent, error) {
	timestamp, signatures, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}

	age := c.clock.Now().Sub(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return nil, ErrStaleSignature
	}

	expected := computeSignature(c.cfg.WebhookSecret, timestamp, payload)
	if !anySignatureMatches(expected, signatures) {
		return nil, ErrBadSignature
	}

	var event eventPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errs.Wrap(err, "failed to decode webhook event")
	}

	return &commands.ProviderEvent{
		ID:   event.ID,
		Type: event.Type,
		Session: &commands.ProviderSession{
			ID:            event.Data.Object.ID,
			PaymentStatus: event.Data.Object.PaymentStatus,
			ReservationID: event.Data.Object.Metadata.ReservationID,
		},
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return errs.Wrap(err, "failed to build payment request")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(err, "payment request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errs.Wrap(err, "failed to read payment response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Errorf("payment provider returned %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errs.Wrap(err, "failed to decode payment response")
	}

	return nil
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var (
		timestamp  int64
		signatures []string
	)

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, ErrBadSignature
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, ErrBadSignature
	}

	return timestamp, signatures, nil
}

func computeSignature(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func anySignatureMatches(expected string, candidates []string) bool {
	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return true
		}
	}
	return false
}
