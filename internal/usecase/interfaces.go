package usecase

import "context"

// PaymentGateway creates hosted checkout sessions with the payment
// processor.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error)
}

type CheckoutSessionInput struct {
	InvoicePublicID string
	Description     string
	AmountCents     int
	SuccessURL      string
	CancelURL       string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// Notification kinds the ops worker knows how to announce.
const (
	NotificationNewLead    = "new_lead"
	NotificationRepeatLead = "repeat_lead"
)

// LeadNotification is the event published when a lead is captured or
// re-engaged. The queue producer owns the wire encoding.
type LeadNotification struct {
	Kind      string `json:"kind"`
	FamilyID  string `json:"family_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	EventType string `json:"event_type"`
}

// NotificationProducer publishes lead events for the ops notification
// worker. Publishing is always best-effort from the webhook path.
type NotificationProducer interface {
	PublishLeadNotification(ctx context.Context, payload LeadNotification) error
}
