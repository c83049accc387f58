package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/hplandscaping/booking-platform/internal/availability"
	"github.com/hplandscaping/booking-platform/internal/catalog"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// SiteHandler serves the read-only data the booking pages render from.
type SiteHandler struct {
	catalog  *catalog.Catalog
	provider *availability.Provider
	logger   *logging.Logger
}

// NewSiteHandler creates a SiteHandler. Nil arguments fall back to the
// embedded catalog and a provider in the local timezone.
func NewSiteHandler(cat *catalog.Catalog, provider *availability.Provider, logger *logging.Logger) *SiteHandler {
	if cat == nil {
		cat = catalog.Default()
	}
	if provider == nil {
		provider = availability.NewProvider(time.Local)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SiteHandler{catalog: cat, provider: provider, logger: logger}
}

// Health reports liveness.
func (h *SiteHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Services lists the catalog in display order.
func (h *SiteHandler) Services(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Services)
}

// Calendar returns the month grid for ?month=YYYY-MM, or the current month.
func (h *SiteHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("month"))
	if raw == "" {
		writeJSON(w, http.StatusOK, h.provider.CurrentMonth())
		return
	}
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		h.logger.Debug("invalid calendar month", "month", raw, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid month, expected YYYY-MM"})
		return
	}
	writeJSON(w, http.StatusOK, h.provider.Month(month.Year(), month.Month()))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
