package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// PaymentIntent is the provider-side charge record.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
	Status       string `json:"status"` // requires_payment, succeeded, refunded
}

// PaymentRefund is the provider-side refund record.
type PaymentRefund struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PaymentProvider abstracts the external card processor.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency, idempotencyKey string, metadata map[string]string) (*PaymentIntent, error)
	GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
	Refund(ctx context.Context, intentID, reason string) (*PaymentRefund, error)
}

// HTTPPaymentProvider talks to the processor's REST API.
type HTTPPaymentProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ PaymentProvider = (*HTTPPaymentProvider)(nil)

func NewHTTPPaymentProvider(baseURL, apiKey string) *HTTPPaymentProvider {
	return &HTTPPaymentProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *HTTPPaymentProvider) CreateIntent(ctx context.Context, amountCents int64, currency, idempotencyKey string, metadata map[string]string) (*PaymentIntent, error) {
	payload := map[string]interface{}{
		"amount":   amountCents,
		"currency": currency,
		"metadata": metadata,
	}
	var intent PaymentIntent
	if err := p.do(ctx, http.MethodPost, "/v1/payment_intents", idempotencyKey, payload, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (p *HTTPPaymentProvider) GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := p.do(ctx, http.MethodGet, "/v1/payment_intents/"+intentID, "", nil, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (p *HTTPPaymentProvider) Refund(ctx context.Context, intentID, reason string) (*PaymentRefund, error) {
	payload := map[string]interface{}{
		"payment_intent": intentID,
		"reason":         reason,
	}
	var refund PaymentRefund
	if err := p.do(ctx, http.MethodPost, "/v1/refunds", "", payload, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

func (p *HTTPPaymentProvider) do(ctx context.Context, method, path, idempotencyKey string, payload, out interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("payment provider: %s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// StubPaymentProvider succeeds every charge immediately. Used in mock
// database mode and tests so the booking flow works without a
// processor account.
type StubPaymentProvider struct{}

var _ PaymentProvider = (*StubPaymentProvider)(nil)

func (StubPaymentProvider) CreateIntent(ctx context.Context, amountCents int64, currency, idempotencyKey string, metadata map[string]string) (*PaymentIntent, error) {
	return &PaymentIntent{
		ID:           "pi_mock_" + uuid.NewString(),
		ClientSecret: "secret_mock_" + uuid.NewString(),
		AmountCents:  amountCents,
		Currency:     currency,
		Status:       "succeeded",
	}, nil
}

func (StubPaymentProvider) GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	return &PaymentIntent{ID: intentID, Status: "succeeded"}, nil
}

func (StubPaymentProvider) Refund(ctx context.Context, intentID, reason string) (*PaymentRefund, error) {
	return &PaymentRefund{ID: "re_mock_" + uuid.NewString(), Status: "succeeded"}, nil
}
