package port

import (
	"context"

	"funding-pool/internal/core/domain"
)

// FundingPool defines the business operations of the escrow pool. This
// interface is the primary port into the application domain: the HTTP layer
// talks to it and fakes can implement it for testing. Every mutation carries
// the caller principal; authorization is a pure equality check against the
// administrator and authority principals, no signatures are verified.
type FundingPool interface {
	// TotalFunds returns the sum of all campaign balances still in escrow.
	TotalFunds(ctx context.Context) int64
	// Campaign returns the funds record for id, or nil when absent.
	Campaign(ctx context.Context, id int64) *domain.Campaign
	// Metadata returns the metadata record for id, or nil when absent.
	Metadata(ctx context.Context, id int64) *domain.CampaignMetadata
	// Approval returns the approval stored under (id, proposalID), or nil.
	Approval(ctx context.Context, id, proposalID int64) *domain.Approval

	// SetAuthority replaces the authority principal. The administrator
	// itself may not be appointed, the two roles stay distinct.
	SetAuthority(ctx context.Context, caller, authority domain.Principal) error
	// SetMaxCampaigns replaces the campaign count ceiling.
	SetMaxCampaigns(ctx context.Context, caller domain.Principal, max int64) error
	// SetMinRelease replaces the minimum approvable release amount.
	SetMinRelease(ctx context.Context, caller domain.Principal, min int64) error
	// SetMaxRelease replaces the maximum approvable release amount.
	SetMaxRelease(ctx context.Context, caller domain.Principal, max int64) error
	// SetFeeRate replaces the platform fee rate (integer percent, 0..10).
	SetFeeRate(ctx context.Context, caller domain.Principal, rate int64) error

	// CreateCampaign opens a new campaign and returns its id. Creation is
	// deliberately ungated; only moving funds out requires a role.
	CreateCampaign(ctx context.Context, name, description string, goal int64, recipient domain.Principal) (int64, error)
	// Deposit moves amount from the caller into the campaign's escrow and
	// returns the new balance.
	Deposit(ctx context.Context, caller domain.Principal, id, amount int64) (int64, error)
	// Lock freezes a campaign against further deposits.
	Lock(ctx context.Context, caller domain.Principal, id int64) error
	// Unlock lifts a manual freeze.
	Unlock(ctx context.Context, caller domain.Principal, id int64) error
	// UpdateMetadata overwrites a campaign's metadata record.
	UpdateMetadata(ctx context.Context, caller domain.Principal, id int64, name, description string, goal int64) error
	// EmergencyWithdraw moves amount from escrow to the administrator,
	// bypassing the release protocol. Works on locked campaigns.
	EmergencyWithdraw(ctx context.Context, caller domain.Principal, id, amount int64) (int64, error)

	// ApproveRelease records an authorisation to release amount under the
	// caller-chosen proposalID. It reserves intent only; no funds move.
	ApproveRelease(ctx context.Context, caller domain.Principal, id, proposalID, amount int64) error
	// ReleaseFunds settles a previously approved proposal: the platform fee
	// goes to the authority, the remainder to the campaign recipient, and
	// the campaign is locked. Returns the net amount paid out.
	ReleaseFunds(ctx context.Context, id, proposalID int64) (int64, error)
}
