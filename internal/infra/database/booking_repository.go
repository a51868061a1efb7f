package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tutorhub/booking-service/internal/entity"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

// Upsert keys on invitee_uri: the unique index there is what makes
// redelivered webhooks idempotent, not anything this process does.
func (r *BookingRepository) Upsert(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (
			id, invitee_uri, event_uri, event_type, family_id,
			contact_name, contact_email, contact_phone, student_name,
			age_group, scheduled_at, status, notes, raw_payload,
			created_at, updated_at
		) VALUES (
			$1, $2, NULLIF($3, ''), $4, NULLIF($5, '')::uuid,
			$6, $7, NULLIF($8, ''), NULLIF($9, ''),
			NULLIF($10, ''), $11, $12, NULLIF($13, ''), $14,
			$15, $16
		)
		ON CONFLICT (invitee_uri) DO UPDATE SET
			event_type    = EXCLUDED.event_type,
			family_id     = COALESCE(EXCLUDED.family_id, bookings.family_id),
			contact_name  = EXCLUDED.contact_name,
			contact_email = EXCLUDED.contact_email,
			contact_phone = COALESCE(EXCLUDED.contact_phone, bookings.contact_phone),
			scheduled_at  = EXCLUDED.scheduled_at,
			raw_payload   = EXCLUDED.raw_payload,
			updated_at    = NOW()
		RETURNING id
	`

	return r.DB.QueryRowContext(ctx, query,
		b.ID,
		b.InviteeURI,
		b.EventURI,
		b.EventType,
		b.FamilyID,
		b.ContactName,
		b.ContactEmail,
		b.ContactPhone,
		b.StudentName,
		b.AgeGroup,
		b.ScheduledAt,
		b.Status,
		b.Notes,
		string(b.RawPayload),
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID)
}

func (r *BookingRepository) MarkCanceled(ctx context.Context, inviteeURI, reason string, canceledAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'canceled', canceled_at = $2, cancel_reason = NULLIF($3, ''), updated_at = NOW()
		WHERE invitee_uri = $1
	`
	result, err := r.DB.ExecContext(ctx, query, inviteeURI, canceledAt, reason)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *BookingRepository) FindByInviteeURI(ctx context.Context, inviteeURI string) (*entity.Booking, error) {
	query := `
		SELECT id, invitee_uri, COALESCE(event_uri, ''), event_type,
		       COALESCE(family_id::text, ''), contact_name, contact_email,
		       COALESCE(contact_phone, ''), COALESCE(student_name, ''),
		       COALESCE(age_group, ''), scheduled_at, status, canceled_at,
		       COALESCE(cancel_reason, ''), COALESCE(notes, ''), raw_payload,
		       created_at, updated_at
		FROM bookings
		WHERE invitee_uri = $1
	`

	var b entity.Booking
	var scheduledAt, canceledAt sql.NullTime

	err := r.DB.QueryRowContext(ctx, query, inviteeURI).Scan(
		&b.ID,
		&b.InviteeURI,
		&b.EventURI,
		&b.EventType,
		&b.FamilyID,
		&b.ContactName,
		&b.ContactEmail,
		&b.ContactPhone,
		&b.StudentName,
		&b.AgeGroup,
		&scheduledAt,
		&b.Status,
		&canceledAt,
		&b.CancelReason,
		&b.Notes,
		&b.RawPayload,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if scheduledAt.Valid {
		b.ScheduledAt = &scheduledAt.Time
	}
	if canceledAt.Valid {
		b.CanceledAt = &canceledAt.Time
	}
	return &b, nil
}
