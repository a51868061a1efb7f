package usecase

import (
	"context"
	"log"

	"github.com/tutorhub/booking-service/internal/entity"
)

type UpdateMessageStatusInput struct {
	MessageSID   string
	Status       string
	ErrorCode    string
	ErrorMessage string
}

// UpdateMessageStatusUseCase records SMS delivery receipts. Errors here
// are deliberately swallowed by the handler (it always answers 200) so
// the provider does not retry-storm us; the log line is the only trace.
type UpdateMessageStatusUseCase struct {
	MessageRepo entity.MessageRepositoryInterface
}

func NewUpdateMessageStatusUseCase(messageRepo entity.MessageRepositoryInterface) *UpdateMessageStatusUseCase {
	return &UpdateMessageStatusUseCase{MessageRepo: messageRepo}
}

func (uc *UpdateMessageStatusUseCase) Execute(ctx context.Context, input UpdateMessageStatusInput) error {
	if input.MessageSID == "" || input.Status == "" {
		return &DomainError{Code: "VALIDATION_ERROR", Message: "MessageSid and MessageStatus are required"}
	}

	matched, err := uc.MessageRepo.UpdateStatus(ctx, input.MessageSID, input.Status, input.ErrorCode, input.ErrorMessage)
	if err != nil {
		return &TechnicalError{Code: "STORE_ERROR", Message: "update message status: " + err.Error()}
	}
	if !matched {
		log.Printf("[sms] status %q for untracked message %s, ignoring", input.Status, input.MessageSID)
	}
	return nil
}
