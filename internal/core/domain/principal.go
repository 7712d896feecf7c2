package domain

// Principal identifies a party on the external ledger: the contract
// administrator, the authority, a depositor or a campaign recipient. It is
// opaque to the engine and only ever compared for equality.
type Principal string

// Zero reports whether the principal is unset.
func (p Principal) Zero() bool { return p == "" }
