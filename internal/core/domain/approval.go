package domain

// ApprovalKey identifies a release approval. ProposalID is chosen by the
// approver, so re-approving under the same key overwrites the prior record.
type ApprovalKey struct {
	CampaignID int64
	ProposalID int64
}

// Approval is a standing authorisation to release Amount from a campaign.
// It is not consumed by a release; each release re-checks the balance.
type Approval struct {
	Amount   int64
	Approved bool
	Releaser Principal
}
