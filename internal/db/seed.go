package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo treasury accounts: the admin and authority principals,
// the escrow account and a handful of funded donor wallets. Existing
// accounts are left untouched, so seeding is safe to repeat.
func Seed(ctx context.Context, pool *pgxpool.Pool, admin, authority, escrowAccount string) error {
	accounts := []struct {
		principal string
		balance   int64
	}{
		{admin, 0},
		{authority, 0},
		{escrowAccount, 0},
	}
	for i := 1; i <= 5; i++ {
		accounts = append(accounts, struct {
			principal string
			balance   int64
		}{fmt.Sprintf("ST%dDONOR", i), 1_000_000})
	}
	for _, a := range accounts {
		if a.principal == "" {
			continue
		}
		_, err := pool.Exec(ctx, `INSERT INTO accounts (principal, balance)
			VALUES ($1, $2) ON CONFLICT (principal) DO NOTHING`, a.principal, a.balance)
		if err != nil {
			return err
		}
	}
	return nil
}
