package domain

import "time"

// Campaign holds the escrowed funds of a single fundraising campaign.
// Amounts are stored in integer units (e.g. micro-STX or cents).
type Campaign struct {
	ID        int64
	Balance   int64
	Locked    bool
	Recipient Principal
	UpdatedAt time.Time
}

// CampaignMetadata is the informational record created alongside a campaign.
// Goal is a target, it is never enforced against the balance.
type CampaignMetadata struct {
	Name        string
	Description string
	Goal        int64
}
