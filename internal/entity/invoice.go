package entity

import (
	"context"
	"time"
)

// Invoice statuses relevant to checkout. Only open or sent invoices may
// start a checkout session.
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusOpen  = "open"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
	InvoiceStatusVoid  = "void"
)

type Invoice struct {
	ID                string    `json:"id"`
	PublicID          string    `json:"public_id"`
	FamilyID          string    `json:"family_id"`
	Description       string    `json:"description,omitempty"`
	AmountCents       int       `json:"amount_cents"`
	Status            string    `json:"status"`
	CheckoutSessionID string    `json:"checkout_session_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Payable reports whether a checkout session may be created for the
// invoice.
func (i *Invoice) Payable() bool {
	return i.Status == InvoiceStatusOpen || i.Status == InvoiceStatusSent
}

type InvoiceRepositoryInterface interface {
	FindByPublicID(ctx context.Context, publicID string) (*Invoice, error)
	AttachCheckoutSession(ctx context.Context, invoiceID, sessionID string) error
}
