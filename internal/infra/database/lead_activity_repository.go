package database

import (
	"context"
	"database/sql"

	"github.com/tutorhub/booking-service/internal/entity"
)

type LeadActivityRepository struct {
	DB *sql.DB
}

func NewLeadActivityRepository(db *sql.DB) *LeadActivityRepository {
	return &LeadActivityRepository{DB: db}
}

func (r *LeadActivityRepository) Create(ctx context.Context, a *entity.LeadActivity) error {
	query := `
		INSERT INTO lead_activities (id, family_id, kind, description, source, source_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.FamilyID,
		a.Kind,
		a.Description,
		a.Source,
		a.SourceID,
		a.CreatedAt,
	)
	return err
}
