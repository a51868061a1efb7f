package entity

import "context"

// OutboundMessage tracks an SMS the console sent through the messaging
// provider. Delivery status arrives asynchronously via webhook, keyed
// by the provider's message SID.
type OutboundMessage struct {
	ID           string `json:"id"`
	MessageSID   string `json:"message_sid"`
	Status       string `json:"status"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type MessageRepositoryInterface interface {
	// UpdateStatus updates the row matched by SID. A miss is not an
	// error: the provider can report on messages sent before this
	// service tracked them.
	UpdateStatus(ctx context.Context, messageSID, status, errorCode, errorMessage string) (bool, error)
}
