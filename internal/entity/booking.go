package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Booking statuses.
const (
	BookingStatusScheduled = "scheduled"
	BookingStatusCanceled  = "canceled"
	BookingStatusError     = "error"
)

// Booking event types as classified from the scheduling tool's
// event-type name.
const (
	EventTypeCall       = "15min_call"
	EventTypeHubDropoff = "hub_dropoff"
	EventTypeOther      = "other"
)

// Booking is one record per webhook-reported scheduling event. The
// invitee URI is the external system's stable key for one person's
// booking of one event and carries a unique constraint in the store,
// which is what makes redelivered webhooks idempotent.
type Booking struct {
	ID            string     `json:"id"`
	InviteeURI    string     `json:"invitee_uri"`
	EventURI      string     `json:"event_uri,omitempty"`
	EventType     string     `json:"event_type"`
	FamilyID      string     `json:"family_id,omitempty"`
	ContactName   string     `json:"contact_name"`
	ContactEmail  string     `json:"contact_email"`
	ContactPhone  string     `json:"contact_phone,omitempty"`
	StudentName   string     `json:"student_name,omitempty"`
	AgeGroup      string     `json:"age_group,omitempty"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	Status        string     `json:"status"`
	CanceledAt    *time.Time `json:"canceled_at,omitempty"`
	CancelReason  string     `json:"cancel_reason,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	RawPayload    []byte     `json:"-"` // stored verbatim for forensic replay
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NewBooking(inviteeURI, eventURI, eventType string) *Booking {
	now := time.Now()
	return &Booking{
		ID:         uuid.New().String(),
		InviteeURI: inviteeURI,
		EventURI:   eventURI,
		EventType:  eventType,
		Status:     BookingStatusScheduled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewDiagnosticBooking builds the forensic row persisted when a webhook
// cannot be processed. Senders rarely surface response bodies to
// operators, so what got saved is the only visibility into bad payloads.
func NewDiagnosticBooking(rawPayload []byte, processingErr string) *Booking {
	b := NewBooking("error://"+uuid.New().String(), "", EventTypeOther)
	b.Status = BookingStatusError
	b.ContactName = "WEBHOOK ERROR"
	b.Notes = processingErr
	b.RawPayload = rawPayload
	return b
}

type BookingRepositoryInterface interface {
	// Upsert inserts the booking or, when the invitee URI already
	// exists, refreshes the snapshot fields on the existing row.
	Upsert(ctx context.Context, b *Booking) error
	// MarkCanceled updates the row matched by invitee URI. A miss is
	// a silent no-op: the scheduling tool may redeliver cancellations.
	MarkCanceled(ctx context.Context, inviteeURI, reason string, canceledAt time.Time) (bool, error)
	FindByInviteeURI(ctx context.Context, inviteeURI string) (*Booking, error)
}
