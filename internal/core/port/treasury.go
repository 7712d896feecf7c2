package port

import (
	"context"
	"errors"

	"funding-pool/internal/core/domain"
)

var ErrTreasuryInsufficientFunds = errors.New("treasury: insufficient funds")

// Treasury is the outbound port to the external value ledger. The engine
// never holds value itself; it instructs the treasury to move it and only
// commits its own state once the transfer succeeded. Implementations must
// apply each transfer atomically.
type Treasury interface {
	// Transfer moves amount from one principal to another and returns an
	// opaque journal reference. A failed transfer must leave both balances
	// untouched.
	Transfer(ctx context.Context, amount int64, from, to domain.Principal) (string, error)
}

// TreasuryAuditor exposes read access to the ledger for reconciliation. The
// engine never consults it; it exists for the HTTP surface and operators.
type TreasuryAuditor interface {
	// Balance returns the ledger balance of a principal, zero when unknown.
	Balance(ctx context.Context, p domain.Principal) (int64, error)
	// Journal returns transfers touching a principal, newest first.
	Journal(ctx context.Context, p domain.Principal, limit int32) ([]domain.Transfer, error)
}
