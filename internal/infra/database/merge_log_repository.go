package database

import (
	"context"
	"database/sql"

	"github.com/tutorhub/booking-service/internal/entity"
)

type MergeLogRepository struct {
	DB *sql.DB
}

func NewMergeLogRepository(db *sql.DB) *MergeLogRepository {
	return &MergeLogRepository{DB: db}
}

func (r *MergeLogRepository) Create(ctx context.Context, m *entity.FamilyMergeLog) error {
	query := `
		INSERT INTO family_merge_logs (
			id, family_id, matched_by, original_email, new_email,
			purchaser_name, source, source_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.ID,
		m.FamilyID,
		m.MatchedBy,
		m.OriginalEmail,
		m.NewEmail,
		m.PurchaserName,
		m.Source,
		m.SourceID,
		m.CreatedAt,
	)
	return err
}
