package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"funding-pool/internal/core/domain"
)

// proposalID parses the {proposalID} path parameter. A malformed value maps
// to the same error as an out-of-range one.
func proposalID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "proposalID"), 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidProposalID
	}
	return id, nil
}

// handleApproveRelease records a release authorisation under the
// caller-chosen proposal id. Idempotent overwrite on re-approval.
func (h *Handler) handleApproveRelease(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	pid, err := proposalID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req amountRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err = h.pool.ApproveRelease(r.Context(), caller(r), id, pid, req.Amount); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetApproval returns the approval stored under (campaign, proposal).
func (h *Handler) handleGetApproval(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	pid, err := proposalID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	a := h.pool.Approval(r.Context(), id, pid)
	if a == nil {
		h.writeError(w, domain.ErrVoteNotApproved)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type releaseResponse struct {
	Net int64 `json:"net"`
}

// handleReleaseFunds settles an approved proposal. Any caller may trigger
// it; the authorisation happened at approval time.
func (h *Handler) handleReleaseFunds(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	pid, err := proposalID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	net, err := h.pool.ReleaseFunds(r.Context(), id, pid)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, releaseResponse{Net: net})
}
