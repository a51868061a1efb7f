package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	var captured *http.Request
	var capturedForm map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		captured = r
		capturedForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_123","url":"https://checkout.stripe.com/pay/cs_test_123"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("sk_test_abc", server.URL)
	session, err := client.CreateSession(context.Background(), CreateSessionInput{
		InvoicePublicID: "INV-2026-001",
		Description:     "March tutoring",
		AmountCents:     25000,
		SuccessURL:      "https://console.example.com/ok",
		CancelURL:       "https://console.example.com/cancel",
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", session.URL)

	assert.Equal(t, "/checkout/sessions", captured.URL.Path)
	assert.Equal(t, "Bearer sk_test_abc", captured.Header.Get("Authorization"))
	assert.Equal(t, "application/x-www-form-urlencoded", captured.Header.Get("Content-Type"))
	assert.Equal(t, "payment", capturedForm["mode"][0])
	assert.Equal(t, "INV-2026-001", capturedForm["client_reference_id"][0])
	assert.Equal(t, "25000", capturedForm["line_items[0][price_data][unit_amount]"][0])
}

func TestCreateSessionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("sk_test_abc", server.URL)
	_, err := client.CreateSession(context.Background(), CreateSessionInput{InvoicePublicID: "INV-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 402")
}

func TestCreateSessionMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("sk_test_abc", server.URL)
	_, err := client.CreateSession(context.Background(), CreateSessionInput{InvoicePublicID: "INV-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode stripe response")
}
