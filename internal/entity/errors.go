package entity

import "errors"

var (
	ErrFamilyNotFound  = errors.New("family not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrDuplicateFamily = errors.New("family already exists for email")
)
