package promo

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// EvaluateRequest is the body of POST /api/exit-intent.
type EvaluateRequest struct {
	SessionID string    `json:"sessionId"`
	OpenedAt  time.Time `json:"openedAt"`
	PointerY  int       `json:"pointerY"`
}

// Handler serves /api/exit-intent.
type Handler struct {
	exitIntent *ExitIntent
	now        func() time.Time
	logger     *logging.Logger
}

// NewHandler creates a promo handler.
func NewHandler(exitIntent *ExitIntent, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{exitIntent: exitIntent, now: time.Now, logger: logger}
}

// Evaluate handles POST /api/exit-intent.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	decision, err := h.exitIntent.Evaluate(r.Context(), Visit{
		SessionID: req.SessionID,
		OpenedAt:  req.OpenedAt,
		PointerY:  req.PointerY,
		Now:       h.now(),
	})
	switch {
	case errors.Is(err, ErrMissingSession):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: sessionId"})
		return
	case err != nil:
		h.logger.Error("exit intent evaluation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to evaluate exit intent"})
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
