package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/tutorhub/booking-service/internal/entity"
)

// ResolvedContact is the outcome of matching a webhook contact against
// the family directory.
type ResolvedContact struct {
	Family               *entity.Family
	MatchedBy            string // "email" or "name"
	IsExistingActiveLead bool
	HasActiveEnrollment  bool
}

// ContactResolver finds the family a booking belongs to. Email match
// first; when that misses, an exact match on the normalized "Last,
// First" display name, restricted to active/lead families. Every name
// match is audit-logged because it is a heuristic a human may need to
// correct.
type ContactResolver struct {
	FamilyRepo     entity.FamilyRepositoryInterface
	EnrollmentRepo entity.EnrollmentRepositoryInterface
	MergeLogRepo   entity.MergeLogRepositoryInterface
}

func NewContactResolver(
	familyRepo entity.FamilyRepositoryInterface,
	enrollmentRepo entity.EnrollmentRepositoryInterface,
	mergeLogRepo entity.MergeLogRepositoryInterface,
) *ContactResolver {
	return &ContactResolver{
		FamilyRepo:     familyRepo,
		EnrollmentRepo: enrollmentRepo,
		MergeLogRepo:   mergeLogRepo,
	}
}

// Resolve returns nil (no error) when nothing matches. source/sourceID
// identify the webhook delivery for the merge-log audit trail.
func (r *ContactResolver) Resolve(ctx context.Context, email, fullName, source, sourceID string) (*ResolvedContact, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	family, err := r.FamilyRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrFamilyNotFound) {
		return nil, err
	}
	matchedBy := "email"

	if family == nil {
		family, err = r.resolveByName(ctx, email, fullName, source, sourceID)
		if err != nil {
			return nil, err
		}
		matchedBy = "name"
	}
	if family == nil {
		return nil, nil
	}

	hasEnrollment, err := r.EnrollmentRepo.HasActive(ctx, family.ID)
	if err != nil {
		return nil, err
	}

	return &ResolvedContact{
		Family:               family,
		MatchedBy:            matchedBy,
		IsExistingActiveLead: family.IsActiveLead(),
		HasActiveEnrollment:  hasEnrollment,
	}, nil
}

func (r *ContactResolver) resolveByName(ctx context.Context, email, fullName, source, sourceID string) (*entity.Family, error) {
	// Need at least a first and last token to build "Last, First".
	if len(strings.Fields(fullName)) < 2 {
		return nil, nil
	}
	displayName := entity.FormatDisplayName(fullName)

	family, err := r.FamilyRepo.FindByDisplayName(ctx, displayName)
	if errors.Is(err, entity.ErrFamilyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	mergeLog := entity.NewFamilyMergeLog(family.ID, family.PrimaryEmail, email, fullName, source, sourceID)
	if err := r.MergeLogRepo.Create(ctx, mergeLog); err != nil {
		return nil, err
	}
	log.Printf("[resolver] name-matched %q to family %s (primary email %s), merge log %s written for review",
		displayName, family.ID, family.PrimaryEmail, mergeLog.ID)

	// Keep the new address around, but never clobber an existing one.
	if family.SecondaryEmail == "" && email != "" {
		if err := r.FamilyRepo.SetSecondaryEmailIfEmpty(ctx, family.ID, email); err != nil {
			return nil, err
		}
		family.SecondaryEmail = email
	}

	return family, nil
}
