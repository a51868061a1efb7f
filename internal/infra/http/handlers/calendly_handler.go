package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tutorhub/booking-service/internal/infra/http/middleware"
	"github.com/tutorhub/booking-service/internal/usecase"
	"github.com/tutorhub/booking-service/internal/webhook"
)

// CalendlyHandler is the top-level dispatch for scheduling webhooks:
// signature check, normalize, then hand off to the ingestion state
// machine. Auth failures get no diagnostic write (attackers should not
// be able to flood the bookings table); everything past the signature
// gate does.
type CalendlyHandler struct {
	Ingest *usecase.IngestBookingUseCase
	Secret string
}

func NewCalendlyHandler(ingest *usecase.IngestBookingUseCase, secret string) *CalendlyHandler {
	return &CalendlyHandler{Ingest: ingest, Secret: secret}
}

type calendlyResponse struct {
	Success   bool   `json:"success"`
	Action    string `json:"action,omitempty"`
	EventType string `json:"eventType,omitempty"`
	FamilyID  string `json:"familyId,omitempty"`
	BookingID string `json:"bookingId,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *CalendlyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, calendlyResponse{Error: "unreadable body"})
		return
	}

	if h.Secret != "" {
		header := r.Header.Get(webhook.SignatureHeader)
		if err := webhook.VerifySignature(rawBody, header, h.Secret, time.Now()); err != nil {
			log.Printf("[calendly] rejected delivery: %v", err)
			middleware.RecordWebhook("calendly", "unauthorized")
			writeJSON(w, http.StatusUnauthorized, calendlyResponse{Error: "Invalid signature"})
			return
		}
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rawBody, &body); err != nil {
		h.Ingest.WriteDiagnostic(r.Context(), rawBody, "invalid JSON: "+err.Error())
		middleware.RecordWebhook("calendly", "bad_request")
		writeJSON(w, http.StatusBadRequest, calendlyResponse{Error: "Invalid JSON"})
		return
	}

	output, err := h.Ingest.Execute(r.Context(), usecase.IngestBookingInput{
		Normalized: webhook.Normalize(body),
		RawPayload: rawBody,
	})
	if err != nil {
		h.respondError(r.Context(), w, rawBody, err)
		return
	}

	middleware.RecordWebhook("calendly", "ok")
	middleware.RecordBooking(output.EventType, output.Action)
	writeJSON(w, http.StatusOK, calendlyResponse{
		Success:   true,
		Action:    output.Action,
		EventType: output.EventType,
		FamilyID:  output.FamilyID,
		BookingID: output.BookingID,
	})
}

func (h *CalendlyHandler) respondError(ctx context.Context, w http.ResponseWriter, rawBody []byte, err error) {
	if usecase.IsDomainError(err) {
		// Diagnostic row already written by the use case for input
		// errors like a missing invitee email.
		middleware.RecordWebhook("calendly", "bad_request")
		writeJSON(w, http.StatusBadRequest, calendlyResponse{Error: err.Error()})
		return
	}

	// Store failure mid-processing: best-effort forensic write, then
	// 500. Senders rarely show response bodies to operators, so the
	// saved row is the debugging trail.
	log.Printf("[calendly] processing failed: %v", err)
	h.Ingest.WriteDiagnostic(ctx, rawBody, err.Error())
	middleware.RecordWebhook("calendly", "error")
	writeJSON(w, http.StatusInternalServerError, calendlyResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
