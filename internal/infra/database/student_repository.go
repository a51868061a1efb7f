package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tutorhub/booking-service/internal/entity"
)

type StudentRepository struct {
	DB *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(ctx context.Context, s *entity.Student) error {
	query := `
		INSERT INTO students (id, family_id, name, age_group, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.FamilyID, s.Name, s.AgeGroup, s.CreatedAt)
	return err
}

func (r *StudentRepository) FindByFamilyAndName(ctx context.Context, familyID, name string) (*entity.Student, error) {
	query := `
		SELECT id, family_id, name, COALESCE(age_group, ''), created_at
		FROM students
		WHERE family_id = $1 AND LOWER(name) = LOWER($2)
		LIMIT 1
	`

	var s entity.Student
	err := r.DB.QueryRowContext(ctx, query, familyID, name).Scan(
		&s.ID,
		&s.FamilyID,
		&s.Name,
		&s.AgeGroup,
		&s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
