package quotes

import (
	"encoding/json"
	"net/http"

	"github.com/hplandscaping/booking-platform/internal/validation"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// Handler serves /api/quote.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a quotes handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Create handles POST /api/quote.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("panic while processing quote", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": ProcessingError})
		}
	}()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode quote request", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	confirmation, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		if msg, ok := validation.Message(err); ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
			return
		}
		h.logger.Error("failed to process quote", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": ProcessingError})
		return
	}
	writeJSON(w, http.StatusOK, confirmation)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
