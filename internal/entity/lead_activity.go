package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LeadActivity is an append-only touchpoint log keyed to a family.
// Written whenever a known active lead re-books, so pipeline history is
// preserved without rewriting the family row.
type LeadActivity struct {
	ID          string    `json:"id"`
	FamilyID    string    `json:"family_id"`
	Kind        string    `json:"kind"` // e.g. "calendly_rebook"
	Description string    `json:"description"`
	Source      string    `json:"source"`
	SourceID    string    `json:"source_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewLeadActivity(familyID, kind, description, source, sourceID string) *LeadActivity {
	return &LeadActivity{
		ID:          uuid.New().String(),
		FamilyID:    familyID,
		Kind:        kind,
		Description: description,
		Source:      source,
		SourceID:    sourceID,
		CreatedAt:   time.Now(),
	}
}

type LeadActivityRepositoryInterface interface {
	Create(ctx context.Context, a *LeadActivity) error
}
