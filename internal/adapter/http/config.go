package httpadapter

import (
	"encoding/json"
	"net/http"

	"funding-pool/internal/core/domain"
)

// handleTotalFunds reports the escrowed total across all campaigns.
func (h *Handler) handleTotalFunds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int64{"total_funds": h.pool.TotalFunds(r.Context())})
}

type setAuthorityRequest struct {
	Authority domain.Principal `json:"authority"`
}

// handleSetAuthority replaces the authority principal.
func (h *Handler) handleSetAuthority(w http.ResponseWriter, r *http.Request) {
	var req setAuthorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.pool.SetAuthority(r.Context(), caller(r), req.Authority); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setValueRequest struct {
	Value int64 `json:"value"`
}

// setValue decodes the common {"value": n} body and applies fn.
func (h *Handler) setValue(w http.ResponseWriter, r *http.Request, fn func(caller domain.Principal, v int64) error) {
	var req setValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := fn(caller(r), req.Value); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetMaxCampaigns(w http.ResponseWriter, r *http.Request) {
	h.setValue(w, r, func(c domain.Principal, v int64) error {
		return h.pool.SetMaxCampaigns(r.Context(), c, v)
	})
}

func (h *Handler) handleSetMinRelease(w http.ResponseWriter, r *http.Request) {
	h.setValue(w, r, func(c domain.Principal, v int64) error {
		return h.pool.SetMinRelease(r.Context(), c, v)
	})
}

func (h *Handler) handleSetMaxRelease(w http.ResponseWriter, r *http.Request) {
	h.setValue(w, r, func(c domain.Principal, v int64) error {
		return h.pool.SetMaxRelease(r.Context(), c, v)
	})
}

func (h *Handler) handleSetFeeRate(w http.ResponseWriter, r *http.Request) {
	h.setValue(w, r, func(c domain.Principal, v int64) error {
		return h.pool.SetFeeRate(r.Context(), c, v)
	})
}
