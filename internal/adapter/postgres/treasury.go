package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"funding-pool/internal/core/domain"
	"funding-pool/internal/core/port"
)

// Treasury implements port.Treasury on PostgreSQL. Each transfer debits and
// credits the account rows and appends a journal entry inside a single
// serializable transaction, so a failed transfer leaves no trace.
type Treasury struct {
	pool *pgxpool.Pool
}

// NewTreasury returns a new treasury over the given connection pool.
func NewTreasury(pool *pgxpool.Pool) *Treasury {
	return &Treasury{pool: pool}
}

// Transfer moves amount between principals and returns the journal
// reference. The debited account must exist and cover the amount; the
// credited account is created on first use.
func (t *Treasury) Transfer(ctx context.Context, amount int64, from, to domain.Principal) (string, error) {
	if amount < 0 {
		return "", domain.ErrInvalidAmount
	}
	tx, err := t.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	// lock the debited account
	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE principal = $1 FOR UPDATE`, string(from)).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		err = port.ErrTreasuryInsufficientFunds
		return "", err
	}
	if err != nil {
		return "", err
	}
	if balance < amount {
		err = port.ErrTreasuryInsufficientFunds
		return "", err
	}
	if _, err = tx.Exec(ctx, `UPDATE accounts SET balance = balance - $1 WHERE principal = $2`, amount, string(from)); err != nil {
		return "", err
	}
	if _, err = tx.Exec(ctx, `INSERT INTO accounts (principal, balance) VALUES ($1, $2)
		ON CONFLICT (principal) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance`, string(to), amount); err != nil {
		return "", err
	}

	ref := uuid.NewString()
	_, err = tx.Exec(ctx, `INSERT INTO transfers (reference, amount, from_principal, to_principal, created_at)
		VALUES ($1, $2, $3, $4, $5)`, ref, amount, string(from), string(to), time.Now().UTC())
	if err != nil {
		return "", err
	}
	return ref, nil
}

// Balance returns the current ledger balance of a principal. Unknown
// principals report zero.
func (t *Treasury) Balance(ctx context.Context, p domain.Principal) (int64, error) {
	var balance int64
	err := t.pool.QueryRow(ctx, `SELECT balance FROM accounts WHERE principal = $1`, string(p)).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Journal returns transfers touching a principal, newest first, capped at
// limit.
func (t *Treasury) Journal(ctx context.Context, p domain.Principal, limit int32) ([]domain.Transfer, error) {
	rows, err := t.pool.Query(ctx, `SELECT id, reference, amount, from_principal, to_principal, created_at
		FROM transfers WHERE from_principal = $1 OR to_principal = $1
		ORDER BY id DESC LIMIT $2`, string(p), limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transfer, error) {
		var tr domain.Transfer
		err := row.Scan(&tr.ID, &tr.Reference, &tr.Amount, &tr.From, &tr.To, &tr.CreatedAt)
		return tr, err
	})
}
