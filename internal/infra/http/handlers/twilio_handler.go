package handlers

import (
	"log"
	"net/http"

	"github.com/tutorhub/booking-service/internal/infra/http/middleware"
	"github.com/tutorhub/booking-service/internal/usecase"
)

// TwilioStatusHandler ingests SMS delivery receipts. It ALWAYS answers
// 200: Twilio retries non-2xx responses aggressively and a retry storm
// over a status update is worse than losing the update. Internal
// failures are logged and that is all.
type TwilioStatusHandler struct {
	UpdateStatus *usecase.UpdateMessageStatusUseCase
}

func NewTwilioStatusHandler(updateStatus *usecase.UpdateMessageStatusUseCase) *TwilioStatusHandler {
	return &TwilioStatusHandler{UpdateStatus: updateStatus}
}

func (h *TwilioStatusHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("[sms] unparseable status callback: %v", err)
		middleware.RecordWebhook("twilio", "bad_request")
		w.WriteHeader(http.StatusOK)
		return
	}

	input := usecase.UpdateMessageStatusInput{
		MessageSID:   r.PostFormValue("MessageSid"),
		Status:       r.PostFormValue("MessageStatus"),
		ErrorCode:    r.PostFormValue("ErrorCode"),
		ErrorMessage: r.PostFormValue("ErrorMessage"),
	}

	if err := h.UpdateStatus.Execute(r.Context(), input); err != nil {
		log.Printf("[sms] status update failed for %s: %v", input.MessageSID, err)
		middleware.RecordWebhook("twilio", "error")
		w.WriteHeader(http.StatusOK)
		return
	}

	middleware.RecordWebhook("twilio", "ok")
	w.WriteHeader(http.StatusOK)
}
