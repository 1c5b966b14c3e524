package pkg

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const TossBaseURL = "https://api.tosspayments.com/v1"

// TossPayment is the subset of the confirm response the backend needs.
type TossPayment struct {
	PaymentKey  string `json:"paymentKey"`
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"totalAmount"`
}

// TossClient calls the confirm-then-credit payment API.
type TossClient struct {
	client    *http.Client
	secretKey string
	baseURL   string
}

func NewTossClient(secretKey string) *TossClient {
	return &TossClient{
		client:    &http.Client{Timeout: 30 * time.Second},
		secretKey: secretKey,
		baseURL:   TossBaseURL,
	}
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *TossClient) SetBaseURL(url string) {
	c.baseURL = url
}

// ConfirmPayment confirms a payment handle against the expected order and
// amount. The provider rejects mismatched amounts.
func (c *TossClient) ConfirmPayment(ctx context.Context, paymentKey, orderID string, amount int64) (*TossPayment, error) {
	jsonBody, err := json.Marshal(map[string]interface{}{
		"paymentKey": paymentKey,
		"orderId":    orderID,
		"amount":     amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseURL+"/payments/confirm", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.secretKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")

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

	var payment TossPayment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %v", err)
	}
	return &payment, nil
}
