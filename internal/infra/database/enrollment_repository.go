package database

import (
	"context"
	"database/sql"
)

type EnrollmentRepository struct {
	DB *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) HasActive(ctx context.Context, familyID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM enrollments
			WHERE family_id = $1 AND status IN ('active', 'trial')
		)
	`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, familyID).Scan(&exists)
	return exists, err
}
