package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"funding-pool/internal/core/domain"
)

// campaignID parses the {id} path parameter. A malformed id maps to the same
// error as an unissued one.
func campaignID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidCampaignID
	}
	return id, nil
}

type createCampaignRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Goal        int64            `json:"goal"`
	Recipient   domain.Principal `json:"recipient"`
}

type campaignResponse struct {
	ID        int64            `json:"id"`
	Balance   int64            `json:"balance"`
	Locked    bool             `json:"locked"`
	Recipient domain.Principal `json:"recipient"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// handleCreateCampaign opens a new campaign. Creation is unauthenticated by
// design; only moving funds out of escrow requires a role.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	id, err := h.pool.CreateCampaign(r.Context(), req.Name, req.Description, req.Goal, req.Recipient)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// handleGetCampaign returns the funds record of a campaign.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	c := h.pool.Campaign(r.Context(), id)
	if c == nil {
		h.writeError(w, domain.ErrCampaignNotFound)
		return
	}
	writeJSON(w, http.StatusOK, campaignResponse{
		ID:        c.ID,
		Balance:   c.Balance,
		Locked:    c.Locked,
		Recipient: c.Recipient,
		UpdatedAt: c.UpdatedAt,
	})
}

// handleGetMetadata returns the metadata record of a campaign.
func (h *Handler) handleGetMetadata(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	m := h.pool.Metadata(r.Context(), id)
	if m == nil {
		h.writeError(w, domain.ErrCampaignNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type updateMetadataRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Goal        int64  `json:"goal"`
}

// handleUpdateMetadata overwrites a campaign's metadata.
func (h *Handler) handleUpdateMetadata(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req updateMetadataRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err = h.pool.UpdateMetadata(r.Context(), caller(r), id, req.Name, req.Description, req.Goal); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

// handleDeposit moves funds from the caller into a campaign's escrow.
func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req amountRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	balance, err := h.pool.Deposit(r.Context(), caller(r), id, req.Amount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

// handleLock freezes a campaign against deposits.
func (h *Handler) handleLock(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err = h.pool.Lock(r.Context(), caller(r), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUnlock lifts a manual freeze.
func (h *Handler) handleUnlock(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err = h.pool.Unlock(r.Context(), caller(r), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleEmergencyWithdraw drains funds to the administrator outside the
// release protocol.
func (h *Handler) handleEmergencyWithdraw(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req amountRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	balance, err := h.pool.EmergencyWithdraw(r.Context(), caller(r), id, req.Amount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}
