package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/tutorhub/booking-service/internal/entity"
)

type CreateCheckoutInput struct {
	InvoicePublicID string `json:"invoice_public_id"`
}

type CreateCheckoutOutput struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// CreateCheckoutUseCase turns an open invoice into a hosted checkout
// session with the payment processor and pins the session id on the
// invoice row.
type CreateCheckoutUseCase struct {
	InvoiceRepo entity.InvoiceRepositoryInterface
	Gateway     PaymentGateway
	SuccessURL  string
	CancelURL   string
}

func NewCreateCheckoutUseCase(invoiceRepo entity.InvoiceRepositoryInterface, gateway PaymentGateway, successURL, cancelURL string) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		InvoiceRepo: invoiceRepo,
		Gateway:     gateway,
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
	}
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, input CreateCheckoutInput) (*CreateCheckoutOutput, error) {
	publicID := strings.TrimSpace(input.InvoicePublicID)
	if publicID == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "invoice_public_id is required"}
	}

	invoice, err := uc.InvoiceRepo.FindByPublicID(ctx, publicID)
	if errors.Is(err, entity.ErrInvoiceNotFound) {
		return nil, &DomainError{Code: "INVOICE_NOT_FOUND", Message: "invoice not found"}
	}
	if err != nil {
		return nil, &TechnicalError{Code: "STORE_ERROR", Message: "find invoice: " + err.Error()}
	}

	if !invoice.Payable() {
		return nil, &DomainError{Code: "INVOICE_NOT_PAYABLE", Message: "invoice is " + invoice.Status + ", checkout not allowed"}
	}

	session, err := uc.Gateway.CreateCheckoutSession(ctx, CheckoutSessionInput{
		InvoicePublicID: invoice.PublicID,
		Description:     invoice.Description,
		AmountCents:     invoice.AmountCents,
		SuccessURL:      uc.SuccessURL,
		CancelURL:       uc.CancelURL,
	})
	if err != nil {
		return nil, &TechnicalError{Code: "GATEWAY_ERROR", Message: "create checkout session: " + err.Error()}
	}

	if err := uc.InvoiceRepo.AttachCheckoutSession(ctx, invoice.ID, session.ID); err != nil {
		return nil, &TechnicalError{Code: "STORE_ERROR", Message: "attach session: " + err.Error()}
	}

	return &CreateCheckoutOutput{CheckoutURL: session.URL, SessionID: session.ID}, nil
}
