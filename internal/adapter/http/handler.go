package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"funding-pool/internal/core/domain"
	"funding-pool/internal/core/port"
)

// Handler is the inbound HTTP adapter. It binds every pool operation to a
// route on a chi.Router and maps the domain error taxonomy to HTTP statuses.
// The caller principal is taken from the X-Caller header; it is an opaque
// identifier, no authentication beyond equality checks happens here.
type Handler struct {
	pool     port.FundingPool
	treasury port.TreasuryAuditor
	logger   *slog.Logger
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(pool port.FundingPool, treasury port.TreasuryAuditor, logger *slog.Logger) *Handler {
	h := &Handler{pool: pool, treasury: treasury, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/pool/total", h.handleTotalFunds)
		r.Put("/pool/authority", h.handleSetAuthority)
		r.Put("/pool/max-campaigns", h.handleSetMaxCampaigns)
		r.Put("/pool/min-release", h.handleSetMinRelease)
		r.Put("/pool/max-release", h.handleSetMaxRelease)
		r.Put("/pool/fee-rate", h.handleSetFeeRate)

		r.Post("/campaigns", h.handleCreateCampaign)
		r.Get("/campaigns/{id}", h.handleGetCampaign)
		r.Get("/campaigns/{id}/metadata", h.handleGetMetadata)
		r.Put("/campaigns/{id}/metadata", h.handleUpdateMetadata)
		r.Post("/campaigns/{id}/deposit", h.handleDeposit)
		r.Post("/campaigns/{id}/lock", h.handleLock)
		r.Post("/campaigns/{id}/unlock", h.handleUnlock)
		r.Post("/campaigns/{id}/withdraw", h.handleEmergencyWithdraw)

		r.Put("/campaigns/{id}/approvals/{proposalID}", h.handleApproveRelease)
		r.Get("/campaigns/{id}/approvals/{proposalID}", h.handleGetApproval)
		r.Post("/campaigns/{id}/approvals/{proposalID}/release", h.handleReleaseFunds)

		r.Get("/treasury/{principal}/balance", h.handleTreasuryBalance)
		r.Get("/treasury/{principal}/journal", h.handleTreasuryJournal)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// caller extracts the caller principal from the X-Caller header.
func caller(r *http.Request) domain.Principal {
	return domain.Principal(r.Header.Get("X-Caller"))
}

// errorBody is the wire shape of a failed operation.
type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// statusCode pairs a domain sentinel with its HTTP status and stable code.
var statusCodes = map[error]struct {
	status int
	code   string
}{
	domain.ErrNotAuthorized:           {http.StatusForbidden, "NOT_AUTHORIZED"},
	domain.ErrCampaignNotFound:        {http.StatusNotFound, "CAMPAIGN_NOT_FOUND"},
	domain.ErrInsufficientFunds:       {http.StatusConflict, "INSUFFICIENT_FUNDS"},
	domain.ErrVoteNotApproved:         {http.StatusConflict, "VOTE_NOT_APPROVED"},
	domain.ErrInvalidAmount:           {http.StatusBadRequest, "INVALID_AMOUNT"},
	domain.ErrAlreadyLocked:           {http.StatusConflict, "ALREADY_LOCKED"},
	domain.ErrNotLocked:               {http.StatusConflict, "NOT_LOCKED"},
	domain.ErrInvalidCampaignID:       {http.StatusNotFound, "INVALID_CAMPAIGN_ID"},
	domain.ErrInvalidProposalID:       {http.StatusBadRequest, "INVALID_PROPOSAL_ID"},
	domain.ErrInvalidRecipient:        {http.StatusBadRequest, "INVALID_RECIPIENT"},
	domain.ErrMaxCampaignsExceeded:    {http.StatusConflict, "MAX_CAMPAIGNS_EXCEEDED"},
	domain.ErrInvalidMinRelease:       {http.StatusBadRequest, "INVALID_MIN_RELEASE"},
	domain.ErrInvalidMaxRelease:       {http.StatusBadRequest, "INVALID_MAX_RELEASE"},
	domain.ErrInvalidFeeRate:          {http.StatusBadRequest, "INVALID_FEE_RATE"},
	domain.ErrAuthorityNotSet:         {http.StatusConflict, "AUTHORITY_NOT_SET"},
	port.ErrTreasuryInsufficientFunds: {http.StatusConflict, "INSUFFICIENT_FUNDS"},
}

// writeError maps a domain error onto the wire. Unknown errors are logged
// and reported as a generic 500 to avoid leaking internals.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	for sentinel, sc := range statusCodes {
		if errors.Is(err, sentinel) {
			writeJSON(w, sc.status, errorBody{Code: sc.code, Error: sentinel.Error()})
			return
		}
	}
	h.logger.Error("internal error", slog.Any("error", err))
	writeJSON(w, http.StatusInternalServerError, errorBody{Code: "INTERNAL", Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
