package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tutorhub/booking-service/internal/entity"
)

type InvoiceRepository struct {
	DB *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

func (r *InvoiceRepository) FindByPublicID(ctx context.Context, publicID string) (*entity.Invoice, error) {
	query := `
		SELECT id, public_id, family_id, COALESCE(description, ''),
		       amount_cents, status, COALESCE(checkout_session_id, ''),
		       created_at, updated_at
		FROM invoices
		WHERE public_id = $1
	`

	var inv entity.Invoice
	err := r.DB.QueryRowContext(ctx, query, publicID).Scan(
		&inv.ID,
		&inv.PublicID,
		&inv.FamilyID,
		&inv.Description,
		&inv.AmountCents,
		&inv.Status,
		&inv.CheckoutSessionID,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) AttachCheckoutSession(ctx context.Context, invoiceID, sessionID string) error {
	query := `UPDATE invoices SET checkout_session_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, invoiceID, sessionID)
	return err
}
