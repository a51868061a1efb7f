package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Student is a child attached to a family, auto-provisioned on hub
// drop-off bookings when the booking form names one.
type Student struct {
	ID        string    `json:"id"`
	FamilyID  string    `json:"family_id"`
	Name      string    `json:"name"`
	AgeGroup  string    `json:"age_group,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is one scheduled hub slot for a student.
type Session struct {
	ID          string    `json:"id"`
	FamilyID    string    `json:"family_id"`
	StudentID   string    `json:"student_id,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Source      string    `json:"source"`
	SourceID    string    `json:"source_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewStudent(familyID, name, ageGroup string) *Student {
	return &Student{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		Name:      name,
		AgeGroup:  ageGroup,
		CreatedAt: time.Now(),
	}
}

func NewSession(familyID, studentID string, scheduledAt time.Time, source, sourceID string) *Session {
	return &Session{
		ID:          uuid.New().String(),
		FamilyID:    familyID,
		StudentID:   studentID,
		ScheduledAt: scheduledAt,
		Source:      source,
		SourceID:    sourceID,
		CreatedAt:   time.Now(),
	}
}

type StudentRepositoryInterface interface {
	Create(ctx context.Context, s *Student) error
	// FindByFamilyAndName returns (nil, nil) when no student matches.
	FindByFamilyAndName(ctx context.Context, familyID, name string) (*Student, error)
}

type SessionRepositoryInterface interface {
	Create(ctx context.Context, s *Session) error
}
