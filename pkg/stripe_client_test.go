package pkg

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestConstructWebhookEvent(t *testing.T) {
	c := NewStripeClient("sk_test")
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1","payment_status":"paid"}}}`)
	secret := "whsec_test"

	header := SignWebhookPayload(payload, secret, time.Now())
	event, err := c.ConstructWebhookEvent(payload, header, secret)
	if err != nil {
		t.Fatalf("ConstructWebhookEvent failed: %v", err)
	}
	if event.ID != "evt_1" || event.Type != "checkout.session.completed" {
		t.Errorf("event = %+v", event)
	}
	var session CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		t.Fatalf("object payload unusable: %v", err)
	}
	if session.ID != "cs_1" {
		t.Errorf("session id = %s", session.ID)
	}
}

func TestConstructWebhookEventRejects(t *testing.T) {
	c := NewStripeClient("sk_test")
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	secret := "whsec_test"

	tests := []struct {
		name   string
		header string
	}{
		{"wrong secret", SignWebhookPayload(payload, "whsec_other", time.Now())},
		{"stale timestamp", SignWebhookPayload(payload, secret, time.Now().Add(-10*time.Minute))},
		{"future timestamp", SignWebhookPayload(payload, secret, time.Now().Add(10*time.Minute))},
		{"tampered payload", SignWebhookPayload([]byte(`{"id":"evt_2"}`), secret, time.Now())},
		{"missing signature", "t=1700000000"},
		{"garbage", "not-a-header"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.ConstructWebhookEvent(payload, tt.header, secret); err == nil {
				t.Error("invalid signature accepted")
			}
		})
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/checkout/sessions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test" {
			t.Errorf("authorization = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("bad form: %v", err)
		}
		if got := r.PostForm.Get("line_items[0][price_data][unit_amount]"); got != "1500" {
			t.Errorf("unit_amount = %q", got)
		}
		if got := r.PostForm.Get("metadata[user_key]"); got != "u1" {
			t.Errorf("metadata[user_key] = %q", got)
		}
		json.NewEncoder(w).Encode(CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"})
	}))
	defer srv.Close()

	c := NewStripeClient("sk_test")
	c.SetBaseURL(srv.URL)

	session, err := c.CreateCheckoutSession(context.Background(), CheckoutParams{
		Amount:      1500,
		Currency:    "krw",
		ProductName: "100 coins",
		SuccessURL:  "https://app.test/success",
		CancelURL:   "https://app.test/cancel",
		Metadata:    map[string]string{"user_key": "u1"},
	})
	if err != nil {
		t.Fatalf("CreateCheckoutSession failed: %v", err)
	}
	if session.ID != "cs_1" || session.URL == "" {
		t.Errorf("session = %+v", session)
	}
}

func TestCreateCheckoutSessionUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewStripeClient("sk_bad")
	c.SetBaseURL(srv.URL)
	if _, err := c.CreateCheckoutSession(context.Background(), CheckoutParams{Amount: 100, Currency: "krw"}); err == nil {
		t.Fatal("upstream error not surfaced")
	}
}
