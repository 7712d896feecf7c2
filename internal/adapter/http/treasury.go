package httpadapter

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"funding-pool/internal/core/domain"
)

// handleTreasuryBalance reports the external ledger balance of a principal.
// Returns 404 when the service runs without a treasury auditor.
func (h *Handler) handleTreasuryBalance(w http.ResponseWriter, r *http.Request) {
	if h.treasury == nil {
		http.NotFound(w, r)
		return
	}
	p := domain.Principal(chi.URLParam(r, "principal"))
	balance, err := h.treasury.Balance(r.Context(), p)
	if err != nil {
		h.logger.Error("treasury balance error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

// handleTreasuryJournal lists transfers touching a principal, newest first.
// The `limit` query parameter caps the page size at 100 (default 20).
func (h *Handler) handleTreasuryJournal(w http.ResponseWriter, r *http.Request) {
	if h.treasury == nil {
		http.NotFound(w, r)
		return
	}
	p := domain.Principal(chi.URLParam(r, "principal"))
	limit := int32(20)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n <= 0 || n > 100 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = int32(n)
	}
	journal, err := h.treasury.Journal(r.Context(), p, limit)
	if err != nil {
		h.logger.Error("treasury journal error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, journal)
}
