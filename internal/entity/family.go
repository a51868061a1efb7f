package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Family statuses.
const (
	FamilyStatusLead     = "lead"
	FamilyStatusActive   = "active"
	FamilyStatusInactive = "inactive"
)

// Lead pipeline statuses. A family is "an active lead" while its
// lead_status is new or contacted.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

const LeadTypeCalendlyCall = "calendly_call"

type Family struct {
	ID             string     `json:"id"`
	DisplayName    string     `json:"display_name"` // "Last, First"
	PrimaryEmail   string     `json:"primary_email"`
	SecondaryEmail string     `json:"secondary_email,omitempty"`
	PrimaryPhone   string     `json:"primary_phone,omitempty"`
	Status         string     `json:"status"`
	LeadStatus     string     `json:"lead_status,omitempty"`
	LeadType       string     `json:"lead_type,omitempty"`
	LeadNotes      string     `json:"lead_notes,omitempty"`
	CalendlyURI    string     `json:"calendly_uri,omitempty"`
	LastBookingAt  *time.Time `json:"last_booking_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsActiveLead reports whether the family is still in the pre-sale
// pipeline. Repeat bookings from these families must not reset their
// pipeline position.
func (f *Family) IsActiveLead() bool {
	return f.LeadStatus == LeadStatusNew || f.LeadStatus == LeadStatusContacted
}

// NewLeadFamily builds a fresh lead from webhook contact data.
func NewLeadFamily(displayName, email, phone, leadType string) *Family {
	now := time.Now()
	return &Family{
		ID:           uuid.New().String(),
		DisplayName:  displayName,
		PrimaryEmail: strings.ToLower(strings.TrimSpace(email)),
		PrimaryPhone: phone,
		Status:       FamilyStatusLead,
		LeadStatus:   LeadStatusNew,
		LeadType:     leadType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// FormatDisplayName turns "First Middle Last" into the console's
// "Last, First Middle" convention. Single-token names come back as-is.
func FormatDisplayName(fullName string) string {
	tokens := strings.Fields(strings.TrimSpace(fullName))
	if len(tokens) < 2 {
		return strings.TrimSpace(fullName)
	}
	last := tokens[len(tokens)-1]
	first := strings.Join(tokens[:len(tokens)-1], " ")
	return last + ", " + first
}

type FamilyRepositoryInterface interface {
	Create(ctx context.Context, f *Family) error
	FindByEmail(ctx context.Context, email string) (*Family, error)
	FindByDisplayName(ctx context.Context, displayName string) (*Family, error)
	UpdateCalendlyFields(ctx context.Context, familyID, calendlyURI string, lastBookingAt time.Time) error
	PromoteToLead(ctx context.Context, familyID, leadType, calendlyURI string, lastBookingAt time.Time) error
	SetSecondaryEmailIfEmpty(ctx context.Context, familyID, email string) error
}
