package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FamilyMergeLog records a booking matched to an existing family by
// display name rather than email. Name matching is inherently ambiguous
// (shared surnames, nicknames), so every hit is logged for human review.
type FamilyMergeLog struct {
	ID            string    `json:"id"`
	FamilyID      string    `json:"family_id"`
	MatchedBy     string    `json:"matched_by"` // always "name" today
	OriginalEmail string    `json:"original_email"`
	NewEmail      string    `json:"new_email"`
	PurchaserName string    `json:"purchaser_name"`
	Source        string    `json:"source"`
	SourceID      string    `json:"source_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewFamilyMergeLog(familyID, originalEmail, newEmail, purchaserName, source, sourceID string) *FamilyMergeLog {
	return &FamilyMergeLog{
		ID:            uuid.New().String(),
		FamilyID:      familyID,
		MatchedBy:     "name",
		OriginalEmail: originalEmail,
		NewEmail:      newEmail,
		PurchaserName: purchaserName,
		Source:        source,
		SourceID:      sourceID,
		CreatedAt:     time.Now(),
	}
}

type MergeLogRepositoryInterface interface {
	Create(ctx context.Context, m *FamilyMergeLog) error
}
