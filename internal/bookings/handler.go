package bookings

import (
	"encoding/json"
	"net/http"

	"github.com/hplandscaping/booking-platform/internal/availability"
	"github.com/hplandscaping/booking-platform/internal/observability/metrics"
	"github.com/hplandscaping/booking-platform/internal/validation"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// Handler serves /api/booking.
type Handler struct {
	svc     *Service
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewHandler creates a bookings handler.
func NewHandler(svc *Service, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, metrics: m, logger: logger}
}

// Create handles POST /api/booking.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("panic while processing booking", "panic", rec)
			writeError(w, http.StatusInternalServerError, ProcessingError)
		}
	}()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode booking request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	confirmation, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		if msg, ok := validation.Message(err); ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		h.logger.Error("failed to process booking", "error", err)
		writeError(w, http.StatusInternalServerError, ProcessingError)
		return
	}
	writeJSON(w, http.StatusOK, confirmation)
}

// Availability handles GET /api/booking?date=. The slot list is the same for
// every date.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	h.metrics.ObserveSlotLookup()
	writeJSON(w, http.StatusOK, AvailabilityResponse{
		Date:           r.URL.Query().Get("date"),
		AvailableTimes: availability.TimeSlots(),
	})
}

// writeJSON encodes payload with the given status.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
