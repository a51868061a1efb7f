package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhub/booking-service/internal/entity"
	"github.com/tutorhub/booking-service/internal/usecase"
)

func newCheckoutHandler(invoices *fakeInvoiceRepo, gateway *fakeGateway) *CheckoutHandler {
	uc := usecase.NewCreateCheckoutUseCase(invoices, gateway, "https://console.example.com/ok", "https://console.example.com/cancel")
	return NewCheckoutHandler(uc)
}

func postCheckout(h *CheckoutHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestCheckoutHandlerSuccess(t *testing.T) {
	invoices := newFakeInvoiceRepo(&entity.Invoice{
		ID:          "inv-1",
		PublicID:    "INV-2026-001",
		AmountCents: 25000,
		Status:      entity.InvoiceStatusOpen,
	})
	gateway := &fakeGateway{session: &usecase.CheckoutSession{ID: "cs_123", URL: "https://checkout.stripe.com/cs_123"}}

	rec := postCheckout(newCheckoutHandler(invoices, gateway), `{"invoice_public_id":"INV-2026-001"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp usecase.CreateCheckoutOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cs_123", resp.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/cs_123", resp.CheckoutURL)
	assert.Equal(t, "cs_123", invoices.sessions["inv-1"])
}

func TestCheckoutHandlerInvalidJSON(t *testing.T) {
	rec := postCheckout(newCheckoutHandler(newFakeInvoiceRepo(), &fakeGateway{}), "{{{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutHandlerUnknownInvoice(t *testing.T) {
	rec := postCheckout(newCheckoutHandler(newFakeInvoiceRepo(), &fakeGateway{}), `{"invoice_public_id":"NOPE"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invoice not found")
}

func TestCheckoutHandlerPaidInvoice(t *testing.T) {
	invoices := newFakeInvoiceRepo(&entity.Invoice{
		ID:       "inv-2",
		PublicID: "INV-2026-002",
		Status:   entity.InvoiceStatusPaid,
	})

	rec := postCheckout(newCheckoutHandler(invoices, &fakeGateway{}), `{"invoice_public_id":"INV-2026-002"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "checkout not allowed")
}

func TestCheckoutHandlerGatewayFailure(t *testing.T) {
	invoices := newFakeInvoiceRepo(&entity.Invoice{
		ID:       "inv-3",
		PublicID: "INV-2026-003",
		Status:   entity.InvoiceStatusSent,
	})
	gateway := &fakeGateway{failWith: errStoreDown}

	rec := postCheckout(newCheckoutHandler(invoices, gateway), `{"invoice_public_id":"INV-2026-003"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
