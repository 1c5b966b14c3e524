package pkg

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
)

const StripeBaseURL = "https://api.stripe.com/v1"

// webhookTolerance bounds the age of a signed webhook timestamp.
const webhookTolerance = 5 * time.Minute

// CheckoutSession is the subset of the hosted checkout session object the
// backend needs.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Metadata      map[string]string `json:"metadata"`
}

// StripeEvent is a webhook event envelope.
type StripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// CheckoutParams describes one coin package purchase.
type CheckoutParams struct {
	Amount      int64 // smallest currency unit
	Currency    string
	ProductName string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// StripeClient calls the hosted-checkout payment API.
type StripeClient struct {
	client    *http.Client
	secretKey string
	baseURL   string
}

func NewStripeClient(secretKey string) *StripeClient {
	return &StripeClient{
		client:    &http.Client{Timeout: 30 * time.Second},
		secretKey: secretKey,
		baseURL:   StripeBaseURL,
	}
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *StripeClient) SetBaseURL(url string) {
	c.baseURL = url
}

// CreateCheckoutSession creates a hosted checkout session for one package.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.Amount, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	for k, v := range params.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %v", err)
	}
	return &session, nil
}

// ConstructWebhookEvent verifies the signature header against the raw payload
// and returns the parsed event. The header carries a timestamp and one or
// more v1 signatures over "<timestamp>.<payload>".
func (c *StripeClient) ConstructWebhookEvent(payload []byte, sigHeader, secret string) (*StripeEvent, error) {
	var timestamp int64
	var signatures []string
	for _, pair := range strings.Split(sigHeader, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "t":
			ts, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid signature timestamp: %v", err)
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, parts[1])
		}
	}
	if timestamp == 0 || len(signatures) == 0 {
		return nil, fmt.Errorf("malformed signature header")
	}
	if d := time.Since(time.Unix(timestamp, 0)); d > webhookTolerance || d < -webhookTolerance {
		return nil, fmt.Errorf("signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	valid := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("no matching webhook signature")
	}

	var event StripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %v", err)
	}
	return &event, nil
}

// SignWebhookPayload produces a valid signature header for a payload. Used by
// tests to exercise ConstructWebhookEvent.
func SignWebhookPayload(payload []byte, secret string, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return "t=" + ts + ",v1=" + hex.EncodeToString(mac.Sum(nil))
}
