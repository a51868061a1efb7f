package entity

import "context"

// Enrollment statuses. Only active and trial count as "live" for the
// purposes of lead-pipeline gating: a paying customer booking a call is
// not a lead event.
const (
	EnrollmentStatusActive = "active"
	EnrollmentStatusTrial  = "trial"
	EnrollmentStatusEnded  = "ended"
)

type EnrollmentRepositoryInterface interface {
	// HasActive reports whether the family has any enrollment in
	// status active or trial.
	HasActive(ctx context.Context, familyID string) (bool, error)
}
