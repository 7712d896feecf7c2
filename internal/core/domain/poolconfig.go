package domain

// PoolConfig is the tunable global state of the pool. TotalFunds is derived:
// it tracks the sum of all campaign balances still held in escrow and is
// adjusted on deposit, release and emergency withdrawal. NextCampaignID only
// grows; ids are never reused.
type PoolConfig struct {
	TotalFunds     int64
	MaxCampaigns   int64
	MinRelease     int64
	MaxRelease     int64
	FeeRate        int64 // platform fee, integer percent, 0..10
	Authority      Principal
	NextCampaignID int64
}
