package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tutorhub/booking-service/internal/usecase"
)

type CheckoutHandler struct {
	CreateCheckoutUC *usecase.CreateCheckoutUseCase
}

func NewCheckoutHandler(uc *usecase.CreateCheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{CreateCheckoutUC: uc}
}

func (h *CheckoutHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCheckoutInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	output, err := h.CreateCheckoutUC.Execute(r.Context(), input)
	if err != nil {
		status := http.StatusInternalServerError
		if usecase.IsDomainError(err) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, output)
}
