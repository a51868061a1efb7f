package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/tutorhub/booking-service/internal/entity"
)

type FamilyRepository struct {
	DB *sql.DB
}

func NewFamilyRepository(db *sql.DB) *FamilyRepository {
	return &FamilyRepository{DB: db}
}

const familyColumns = `
	id, display_name, primary_email, COALESCE(secondary_email, ''),
	COALESCE(primary_phone, ''), status, COALESCE(lead_status, ''),
	COALESCE(lead_type, ''), COALESCE(lead_notes, ''),
	COALESCE(calendly_uri, ''), last_booking_at, created_at, updated_at
`

func (r *FamilyRepository) Create(ctx context.Context, f *entity.Family) error {
	query := `
		INSERT INTO families (
			id, display_name, primary_email, secondary_email, primary_phone,
			status, lead_status, lead_type, calendly_uri, last_booking_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, NULLIF($9, ''), $10, $11, $12)
	`

	_, err := r.DB.ExecContext(ctx, query,
		f.ID,
		f.DisplayName,
		f.PrimaryEmail,
		f.SecondaryEmail,
		f.PrimaryPhone,
		f.Status,
		f.LeadStatus,
		f.LeadType,
		f.CalendlyURI,
		f.LastBookingAt,
		f.CreatedAt,
		f.UpdatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return entity.ErrDuplicateFamily
	}
	return err
}

// FindByEmail matches primary or secondary email case-insensitively.
// When the same address sits on both a paying customer and a stale lead
// duplicate, the active family wins.
func (r *FamilyRepository) FindByEmail(ctx context.Context, email string) (*entity.Family, error) {
	query := `
		SELECT ` + familyColumns + `
		FROM families
		WHERE LOWER(primary_email) = LOWER($1) OR LOWER(secondary_email) = LOWER($1)
		ORDER BY CASE status WHEN 'active' THEN 0 WHEN 'lead' THEN 1 ELSE 2 END, created_at
		LIMIT 1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

// FindByDisplayName is the fuzzy-match fallback: exact case-insensitive
// match on "Last, First", restricted to families still in play.
func (r *FamilyRepository) FindByDisplayName(ctx context.Context, displayName string) (*entity.Family, error) {
	query := `
		SELECT ` + familyColumns + `
		FROM families
		WHERE LOWER(display_name) = LOWER($1) AND status IN ('active', 'lead')
		ORDER BY CASE status WHEN 'active' THEN 0 ELSE 1 END, created_at
		LIMIT 1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, displayName))
}

// UpdateCalendlyFields touches only the scheduling correlation fields.
// Pipeline fields stay untouched so a repeat booking does not reset a
// lead that is already being worked.
func (r *FamilyRepository) UpdateCalendlyFields(ctx context.Context, familyID, calendlyURI string, lastBookingAt time.Time) error {
	query := `
		UPDATE families
		SET calendly_uri = $2, last_booking_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, familyID, calendlyURI, lastBookingAt)
	return err
}

// PromoteToLead re-engages a cold contact, overwriting pipeline fields.
func (r *FamilyRepository) PromoteToLead(ctx context.Context, familyID, leadType, calendlyURI string, lastBookingAt time.Time) error {
	query := `
		UPDATE families
		SET status = 'lead', lead_status = 'new', lead_type = $2,
		    calendly_uri = $3, last_booking_at = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, familyID, leadType, calendlyURI, lastBookingAt)
	return err
}

// SetSecondaryEmailIfEmpty is a one-time conditional backfill; an
// existing secondary email is never overwritten.
func (r *FamilyRepository) SetSecondaryEmailIfEmpty(ctx context.Context, familyID, email string) error {
	query := `
		UPDATE families
		SET secondary_email = $2, updated_at = NOW()
		WHERE id = $1 AND (secondary_email IS NULL OR secondary_email = '')
	`
	_, err := r.DB.ExecContext(ctx, query, familyID, email)
	return err
}

func (r *FamilyRepository) scanOne(row *sql.Row) (*entity.Family, error) {
	var f entity.Family
	var lastBookingAt sql.NullTime

	err := row.Scan(
		&f.ID,
		&f.DisplayName,
		&f.PrimaryEmail,
		&f.SecondaryEmail,
		&f.PrimaryPhone,
		&f.Status,
		&f.LeadStatus,
		&f.LeadType,
		&f.LeadNotes,
		&f.CalendlyURI,
		&lastBookingAt,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrFamilyNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastBookingAt.Valid {
		f.LastBookingAt = &lastBookingAt.Time
	}
	return &f, nil
}
