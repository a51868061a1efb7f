package database

import (
	"context"
	"database/sql"

	"github.com/tutorhub/booking-service/internal/entity"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	query := `
		INSERT INTO sessions (id, family_id, student_id, scheduled_at, source, source_id, created_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, NULLIF($6, ''), $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		s.ID,
		s.FamilyID,
		s.StudentID,
		s.ScheduledAt,
		s.Source,
		s.SourceID,
		s.CreatedAt,
	)
	return err
}
