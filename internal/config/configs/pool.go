package configs

// Pool holds the initial escrow pool settings. Admin is fixed for the
// process lifetime; everything else can be changed at runtime through the
// role-gated configuration endpoints.
type Pool struct {
	// Admin is the contract administrator principal.
	Admin string `env:"ADMIN,notEmpty"`
	// Authority is the initial authority principal. It must differ from
	// Admin and may be replaced at runtime.
	Authority string `env:"AUTHORITY"`
	// EscrowAccount names the ledger account that holds deposited funds.
	EscrowAccount string `env:"ESCROW_ACCOUNT" envDefault:"pool"`
	// MaxCampaigns caps how many campaigns can ever be created.
	MaxCampaigns int64 `env:"MAX_CAMPAIGNS" envDefault:"500"`
	// MinRelease and MaxRelease bound the amount of a single approval.
	MinRelease int64 `env:"MIN_RELEASE" envDefault:"100"`
	MaxRelease int64 `env:"MAX_RELEASE" envDefault:"1000000"`
	// FeeRate is the platform fee in integer percent, 0 to 10.
	FeeRate int64 `env:"FEE_RATE" envDefault:"5"`
	// SeedDemo inserts demo treasury accounts on startup.
	SeedDemo bool `env:"SEED_DEMO" envDefault:"false"`
}
