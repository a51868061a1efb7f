package database

import (
	"context"
	"database/sql"
)

type MessageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) UpdateStatus(ctx context.Context, messageSID, status, errorCode, errorMessage string) (bool, error) {
	query := `
		UPDATE outbound_messages
		SET status = $2, error_code = NULLIF($3, ''), error_message = NULLIF($4, ''), updated_at = NOW()
		WHERE message_sid = $1
	`
	result, err := r.DB.ExecContext(ctx, query, messageSID, status, errorCode, errorMessage)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
