package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tutorhub/booking-service/internal/entity"
)

func TestCreateCheckoutSuccess(t *testing.T) {
	ctx := context.Background()
	invoiceRepo := new(MockInvoiceRepository)
	gateway := new(MockPaymentGateway)

	invoice := &entity.Invoice{
		ID:          "inv-1",
		PublicID:    "INV-2024-001",
		FamilyID:    "fam-1",
		Description: "March tutoring",
		AmountCents: 25000,
		Status:      entity.InvoiceStatusOpen,
	}
	invoiceRepo.On("FindByPublicID", ctx, "INV-2024-001").Return(invoice, nil)
	gateway.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(in CheckoutSessionInput) bool {
		return in.InvoicePublicID == "INV-2024-001" && in.AmountCents == 25000
	})).Return(&CheckoutSession{ID: "cs_123", URL: "https://checkout.stripe.com/cs_123"}, nil)
	invoiceRepo.On("AttachCheckoutSession", ctx, "inv-1", "cs_123").Return(nil)

	uc := NewCreateCheckoutUseCase(invoiceRepo, gateway, "https://ok", "https://cancel")
	output, err := uc.Execute(ctx, CreateCheckoutInput{InvoicePublicID: "INV-2024-001"})

	require.NoError(t, err)
	assert.Equal(t, "cs_123", output.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/cs_123", output.CheckoutURL)
	invoiceRepo.AssertExpectations(t)
}

func TestCreateCheckoutRejectsUnpayableInvoice(t *testing.T) {
	ctx := context.Background()

	for _, status := range []string{entity.InvoiceStatusPaid, entity.InvoiceStatusVoid, entity.InvoiceStatusDraft} {
		t.Run(status, func(t *testing.T) {
			invoiceRepo := new(MockInvoiceRepository)
			gateway := new(MockPaymentGateway)

			invoiceRepo.On("FindByPublicID", ctx, "INV-X").Return(&entity.Invoice{
				ID:       "inv-x",
				PublicID: "INV-X",
				Status:   status,
			}, nil)

			uc := NewCreateCheckoutUseCase(invoiceRepo, gateway, "https://ok", "https://cancel")
			_, err := uc.Execute(ctx, CreateCheckoutInput{InvoicePublicID: "INV-X"})

			require.Error(t, err)
			assert.True(t, IsDomainError(err))
			gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateCheckoutUnknownInvoice(t *testing.T) {
	ctx := context.Background()
	invoiceRepo := new(MockInvoiceRepository)
	gateway := new(MockPaymentGateway)

	invoiceRepo.On("FindByPublicID", ctx, "NOPE").Return(nil, entity.ErrInvoiceNotFound)

	uc := NewCreateCheckoutUseCase(invoiceRepo, gateway, "https://ok", "https://cancel")
	_, err := uc.Execute(ctx, CreateCheckoutInput{InvoicePublicID: "NOPE"})

	require.Error(t, err)
	assert.True(t, IsDomainError(err))
	assert.Equal(t, "INVOICE_NOT_FOUND", err.(*DomainError).Code)
}

func TestCreateCheckoutEmptyInput(t *testing.T) {
	uc := NewCreateCheckoutUseCase(new(MockInvoiceRepository), new(MockPaymentGateway), "https://ok", "https://cancel")
	_, err := uc.Execute(context.Background(), CreateCheckoutInput{})

	require.Error(t, err)
	assert.True(t, IsDomainError(err))
}

func TestCreateCheckoutGatewayFailure(t *testing.T) {
	ctx := context.Background()
	invoiceRepo := new(MockInvoiceRepository)
	gateway := new(MockPaymentGateway)

	invoiceRepo.On("FindByPublicID", ctx, "INV-1").Return(&entity.Invoice{
		ID:       "inv-1",
		PublicID: "INV-1",
		Status:   entity.InvoiceStatusSent,
	}, nil)
	gateway.On("CreateCheckoutSession", ctx, mock.Anything).Return(nil, errors.New("stripe 500"))

	uc := NewCreateCheckoutUseCase(invoiceRepo, gateway, "https://ok", "https://cancel")
	_, err := uc.Execute(ctx, CreateCheckoutInput{InvoicePublicID: "INV-1"})

	require.Error(t, err)
	assert.True(t, IsTechnicalError(err))
	invoiceRepo.AssertNotCalled(t, "AttachCheckoutSession", mock.Anything, mock.Anything, mock.Anything)
}
