package stripe

import (
	"context"

	"github.com/tutorhub/booking-service/internal/usecase"
)

// Gateway adapts Client to the usecase.PaymentGateway interface.
type Gateway struct {
	Client *Client
}

func NewGateway(client *Client) *Gateway {
	return &Gateway{Client: client}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, input usecase.CheckoutSessionInput) (*usecase.CheckoutSession, error) {
	session, err := g.Client.CreateSession(ctx, CreateSessionInput{
		InvoicePublicID: input.InvoicePublicID,
		Description:     input.Description,
		AmountCents:     input.AmountCents,
		SuccessURL:      input.SuccessURL,
		CancelURL:       input.CancelURL,
	})
	if err != nil {
		return nil, err
	}
	return &usecase.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}
