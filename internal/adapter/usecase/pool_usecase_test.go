package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"funding-pool/internal/core/domain"
)

const (
	admin     = domain.Principal("ST1TEST")
	authority = domain.Principal("ST1TEST")
	recipient = domain.Principal("ST2RECIP")
	escrow    = domain.Principal("pool")
)

// recordedTransfer mirrors one entry of the treasury journal.
type recordedTransfer struct {
	Amount int64
	From   domain.Principal
	To     domain.Principal
}

// recordingTreasury is a fake treasury that appends every transfer to a
// slice, standing in for the external ledger.
type recordingTreasury struct {
	mu        sync.Mutex
	transfers []recordedTransfer
	failNext  error
}

func (t *recordingTreasury) Transfer(_ context.Context, amount int64, from, to domain.Principal) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failNext != nil {
		err := t.failNext
		t.failNext = nil
		return "", err
	}
	t.transfers = append(t.transfers, recordedTransfer{Amount: amount, From: from, To: to})
	return "ref", nil
}

func newTestPool(t *testing.T) (*PoolUseCase, *recordingTreasury) {
	t.Helper()
	tr := &recordingTreasury{}
	pool := NewPoolUseCase(tr, Options{
		Admin:     admin,
		Authority: authority,
		FeeRate:   5,
	})
	return pool, tr
}

func TestCreateCampaign(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()

	id, err := pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	if err != nil {
		t.Fatalf("CreateCampaign error: %v", err)
	}
	if id != 0 {
		t.Fatalf("expected first id 0, got %d", id)
	}
	c := pool.Campaign(ctx, 0)
	if c == nil {
		t.Fatal("expected campaign, got nil")
	}
	if c.Balance != 0 || c.Locked || c.Recipient != recipient {
		t.Fatalf("unexpected campaign state: %+v", c)
	}
	m := pool.Metadata(ctx, 0)
	if m == nil || m.Name != "Campaign1" || m.Goal != 1000 {
		t.Fatalf("unexpected metadata: %+v", m)
	}

	// ids are sequential
	id, err = pool.CreateCampaign(ctx, "Campaign2", "Desc2", 500, recipient)
	if err != nil || id != 1 {
		t.Fatalf("expected id 1, got %d (err %v)", id, err)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()

	if _, err := pool.CreateCampaign(ctx, "Invalid", "Desc", 0, recipient); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("zero goal: want ErrInvalidAmount, got %v", err)
	}
	if _, err := pool.CreateCampaign(ctx, "Invalid", "Desc", 1000, admin); !errors.Is(err, domain.ErrInvalidRecipient) {
		t.Fatalf("admin recipient: want ErrInvalidRecipient, got %v", err)
	}

	if err := pool.SetMaxCampaigns(ctx, admin, 1); err != nil {
		t.Fatalf("SetMaxCampaigns error: %v", err)
	}
	if _, err := pool.CreateCampaign(ctx, "C1", "D", 1000, recipient); err != nil {
		t.Fatalf("first campaign should fit: %v", err)
	}
	if _, err := pool.CreateCampaign(ctx, "C2", "D", 1000, recipient); !errors.Is(err, domain.ErrMaxCampaignsExceeded) {
		t.Fatalf("want ErrMaxCampaignsExceeded, got %v", err)
	}
}

func TestDeposit(t *testing.T) {
	pool, tr := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)

	got, err := pool.Deposit(ctx, admin, 0, 500)
	if err != nil {
		t.Fatalf("Deposit error: %v", err)
	}
	if got != 500 {
		t.Fatalf("expected new balance 500, got %d", got)
	}
	if c := pool.Campaign(ctx, 0); c.Balance != 500 {
		t.Fatalf("expected balance 500, got %d", c.Balance)
	}
	if total := pool.TotalFunds(ctx); total != 500 {
		t.Fatalf("expected total funds 500, got %d", total)
	}
	want := []recordedTransfer{{Amount: 500, From: admin, To: escrow}}
	if len(tr.transfers) != 1 || tr.transfers[0] != want[0] {
		t.Fatalf("unexpected transfers: %+v", tr.transfers)
	}
}

func TestDepositValidation(t *testing.T) {
	pool, tr := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)

	if _, err := pool.Deposit(ctx, admin, 0, 0); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("zero amount: want ErrInvalidAmount, got %v", err)
	}
	if _, err := pool.Deposit(ctx, admin, 7, 100); !errors.Is(err, domain.ErrInvalidCampaignID) {
		t.Fatalf("unissued id: want ErrInvalidCampaignID, got %v", err)
	}
	if err := pool.Lock(ctx, admin, 0); err != nil {
		t.Fatalf("Lock error: %v", err)
	}
	if _, err := pool.Deposit(ctx, admin, 0, 100); !errors.Is(err, domain.ErrAlreadyLocked) {
		t.Fatalf("locked campaign: want ErrAlreadyLocked, got %v", err)
	}
	if c := pool.Campaign(ctx, 0); c.Balance != 0 {
		t.Fatalf("failed deposit mutated balance: %d", c.Balance)
	}
	if len(tr.transfers) != 0 {
		t.Fatalf("failed deposits must not transfer: %+v", tr.transfers)
	}
}

func TestDepositTreasuryFailure(t *testing.T) {
	pool, tr := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)

	boom := errors.New("ledger down")
	tr.failNext = boom
	if _, err := pool.Deposit(ctx, admin, 0, 100); !errors.Is(err, boom) {
		t.Fatalf("want treasury error, got %v", err)
	}
	if total := pool.TotalFunds(ctx); total != 0 {
		t.Fatalf("failed transfer mutated total funds: %d", total)
	}
}

func TestApproveRelease(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 1000)

	if err := pool.ApproveRelease(ctx, admin, 0, 1, 500); err != nil {
		t.Fatalf("ApproveRelease error: %v", err)
	}
	a := pool.Approval(ctx, 0, 1)
	if a == nil {
		t.Fatal("expected approval, got nil")
	}
	if a.Amount != 500 || !a.Approved || a.Releaser != admin {
		t.Fatalf("unexpected approval: %+v", a)
	}

	// re-approving the same proposal id overwrites the record
	if err := pool.ApproveRelease(ctx, admin, 0, 1, 600); err != nil {
		t.Fatalf("re-approve error: %v", err)
	}
	if a = pool.Approval(ctx, 0, 1); a.Amount != 600 {
		t.Fatalf("expected overwritten amount 600, got %d", a.Amount)
	}
}

func TestApproveReleaseValidation(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 400)

	cases := []struct {
		name       string
		caller     domain.Principal
		id         int64
		proposalID int64
		amount     int64
		want       error
	}{
		{"unauthorized caller", "ST9MALLORY", 0, 1, 200, domain.ErrNotAuthorized},
		{"zero amount", admin, 0, 1, 0, domain.ErrInvalidAmount},
		{"unissued campaign", admin, 9, 1, 200, domain.ErrInvalidCampaignID},
		{"zero proposal id", admin, 0, 0, 200, domain.ErrInvalidProposalID},
		{"amount above balance", admin, 0, 1, 500, domain.ErrInsufficientFunds},
		{"amount below minimum", admin, 0, 1, 50, domain.ErrInvalidMinRelease},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := pool.ApproveRelease(ctx, tc.caller, tc.id, tc.proposalID, tc.amount); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			if a := pool.Approval(ctx, tc.id, tc.proposalID); a != nil {
				t.Fatalf("failed approval stored a record: %+v", a)
			}
		})
	}

	// max release bound
	if err := pool.SetMaxRelease(ctx, admin, 300); err != nil {
		t.Fatalf("SetMaxRelease error: %v", err)
	}
	if err := pool.ApproveRelease(ctx, admin, 0, 1, 400); !errors.Is(err, domain.ErrInvalidMaxRelease) {
		t.Fatalf("want ErrInvalidMaxRelease, got %v", err)
	}
}

func TestReleaseFunds(t *testing.T) {
	pool, tr := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 1000)
	_ = pool.ApproveRelease(ctx, admin, 0, 1, 1000)

	net, err := pool.ReleaseFunds(ctx, 0, 1)
	if err != nil {
		t.Fatalf("ReleaseFunds error: %v", err)
	}
	if net != 950 {
		t.Fatalf("expected net 950 at 5%% fee, got %d", net)
	}
	c := pool.Campaign(ctx, 0)
	if c.Balance != 0 {
		t.Fatalf("expected balance 0, got %d", c.Balance)
	}
	if !c.Locked {
		t.Fatal("release must lock the campaign")
	}
	if total := pool.TotalFunds(ctx); total != 0 {
		t.Fatalf("expected total funds 0, got %d", total)
	}
	want := []recordedTransfer{
		{Amount: 1000, From: admin, To: escrow},
		{Amount: 50, From: escrow, To: authority},
		{Amount: 950, From: escrow, To: recipient},
	}
	if len(tr.transfers) != len(want) {
		t.Fatalf("unexpected transfers: %+v", tr.transfers)
	}
	for i := range want {
		if tr.transfers[i] != want[i] {
			t.Fatalf("transfer %d: want %+v, got %+v", i, want[i], tr.transfers[i])
		}
	}
}

func TestReleaseWithoutApproval(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 1000)

	if _, err := pool.ReleaseFunds(ctx, 0, 1); !errors.Is(err, domain.ErrVoteNotApproved) {
		t.Fatalf("want ErrVoteNotApproved, got %v", err)
	}
}

func TestReleaseAfterBalanceShrank(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 1000)
	_ = pool.ApproveRelease(ctx, admin, 0, 1, 800)

	// drain below the approved amount; approval stays but settlement fails
	if _, err := pool.EmergencyWithdraw(ctx, admin, 0, 500); err != nil {
		t.Fatalf("EmergencyWithdraw error: %v", err)
	}
	if _, err := pool.ReleaseFunds(ctx, 0, 1); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if c := pool.Campaign(ctx, 0); c.Locked {
		t.Fatal("failed release must not lock the campaign")
	}
}

// A campaign locked by one release can still settle other approved
// proposals; only deposits stay blocked.
func TestReleaseOnLockedCampaign(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 1000)
	_ = pool.ApproveRelease(ctx, admin, 0, 1, 400)
	_ = pool.ApproveRelease(ctx, admin, 0, 2, 400)

	if _, err := pool.ReleaseFunds(ctx, 0, 1); err != nil {
		t.Fatalf("first release error: %v", err)
	}
	if c := pool.Campaign(ctx, 0); !c.Locked {
		t.Fatal("expected campaign locked after first release")
	}
	if _, err := pool.Deposit(ctx, admin, 0, 100); !errors.Is(err, domain.ErrAlreadyLocked) {
		t.Fatalf("deposit after release: want ErrAlreadyLocked, got %v", err)
	}
	net, err := pool.ReleaseFunds(ctx, 0, 2)
	if err != nil {
		t.Fatalf("second release error: %v", err)
	}
	if net != 380 {
		t.Fatalf("expected net 380, got %d", net)
	}
	if c := pool.Campaign(ctx, 0); c.Balance != 200 {
		t.Fatalf("expected balance 200, got %d", c.Balance)
	}
}

func TestReleaseFeeRounding(t *testing.T) {
	pool, tr := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 1000)

	// fee = floor(333*5/100) = 16, net = 317
	_ = pool.ApproveRelease(ctx, admin, 0, 1, 333)
	net, err := pool.ReleaseFunds(ctx, 0, 1)
	if err != nil {
		t.Fatalf("ReleaseFunds error: %v", err)
	}
	if net != 317 {
		t.Fatalf("expected net 317, got %d", net)
	}
	last := tr.transfers[len(tr.transfers)-2]
	if last.Amount != 16 || last.To != authority {
		t.Fatalf("unexpected fee transfer: %+v", last)
	}
}

func TestReleaseZeroFeeRate(t *testing.T) {
	tr := &recordingTreasury{}
	pool := NewPoolUseCase(tr, Options{Admin: admin, Authority: authority, FeeRate: 0})
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 1000)
	_ = pool.ApproveRelease(ctx, admin, 0, 1, 1000)

	net, err := pool.ReleaseFunds(ctx, 0, 1)
	if err != nil {
		t.Fatalf("ReleaseFunds error: %v", err)
	}
	if net != 1000 {
		t.Fatalf("expected full payout, got %d", net)
	}
	// deposit + single payout, no fee leg
	if len(tr.transfers) != 2 {
		t.Fatalf("unexpected transfers: %+v", tr.transfers)
	}
}

func TestReleaseAuthorityNotSet(t *testing.T) {
	tr := &recordingTreasury{}
	pool := NewPoolUseCase(tr, Options{Admin: admin, FeeRate: 5})
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 1000)
	_ = pool.ApproveRelease(ctx, admin, 0, 1, 1000)

	if _, err := pool.ReleaseFunds(ctx, 0, 1); !errors.Is(err, domain.ErrAuthorityNotSet) {
		t.Fatalf("want ErrAuthorityNotSet, got %v", err)
	}
	if total := pool.TotalFunds(ctx); total != 1000 {
		t.Fatalf("failed release mutated total funds: %d", total)
	}
}

func TestLockUnlock(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)

	if err := pool.Lock(ctx, "ST9MALLORY", 0); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("unauthorized lock: want ErrNotAuthorized, got %v", err)
	}
	if err := pool.Lock(ctx, admin, 0); err != nil {
		t.Fatalf("Lock error: %v", err)
	}
	if c := pool.Campaign(ctx, 0); !c.Locked {
		t.Fatal("expected campaign locked")
	}
	if err := pool.Lock(ctx, admin, 0); !errors.Is(err, domain.ErrAlreadyLocked) {
		t.Fatalf("double lock: want ErrAlreadyLocked, got %v", err)
	}
	if err := pool.Unlock(ctx, admin, 0); err != nil {
		t.Fatalf("Unlock error: %v", err)
	}
	if c := pool.Campaign(ctx, 0); c.Locked {
		t.Fatal("expected campaign unlocked")
	}
	if err := pool.Unlock(ctx, admin, 0); !errors.Is(err, domain.ErrNotLocked) {
		t.Fatalf("double unlock: want ErrNotLocked, got %v", err)
	}
}

func TestUpdateMetadata(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)

	if err := pool.UpdateMetadata(ctx, admin, 0, "NewName", "NewDesc", 2000); err != nil {
		t.Fatalf("UpdateMetadata error: %v", err)
	}
	m := pool.Metadata(ctx, 0)
	if m.Name != "NewName" || m.Description != "NewDesc" || m.Goal != 2000 {
		t.Fatalf("unexpected metadata: %+v", m)
	}
	if err := pool.UpdateMetadata(ctx, admin, 0, "N", "D", 0); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("zero goal: want ErrInvalidAmount, got %v", err)
	}
	if err := pool.UpdateMetadata(ctx, "ST9MALLORY", 0, "N", "D", 1); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("unauthorized update: want ErrNotAuthorized, got %v", err)
	}
}

func TestEmergencyWithdraw(t *testing.T) {
	pool, tr := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 1000)

	got, err := pool.EmergencyWithdraw(ctx, admin, 0, 500)
	if err != nil {
		t.Fatalf("EmergencyWithdraw error: %v", err)
	}
	if got != 500 {
		t.Fatalf("expected remaining balance 500, got %d", got)
	}
	if total := pool.TotalFunds(ctx); total != 500 {
		t.Fatalf("expected total funds 500, got %d", total)
	}
	last := tr.transfers[len(tr.transfers)-1]
	if (last != recordedTransfer{Amount: 500, From: escrow, To: admin}) {
		t.Fatalf("unexpected withdraw transfer: %+v", last)
	}

	// works on locked campaigns; it is the rescue path
	if err = pool.Lock(ctx, admin, 0); err != nil {
		t.Fatalf("Lock error: %v", err)
	}
	if _, err = pool.EmergencyWithdraw(ctx, admin, 0, 100); err != nil {
		t.Fatalf("withdraw on locked campaign: %v", err)
	}
}

func TestEmergencyWithdrawValidation(t *testing.T) {
	pool, tr := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 400)
	before := len(tr.transfers)

	if _, err := pool.EmergencyWithdraw(ctx, admin, 0, 500); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if _, err := pool.EmergencyWithdraw(ctx, "ST9MALLORY", 0, 100); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("want ErrNotAuthorized, got %v", err)
	}
	if c := pool.Campaign(ctx, 0); c.Balance != 400 {
		t.Fatalf("failed withdraw mutated balance: %d", c.Balance)
	}
	if total := pool.TotalFunds(ctx); total != 400 {
		t.Fatalf("failed withdraw mutated total funds: %d", total)
	}
	if len(tr.transfers) != before {
		t.Fatalf("failed withdraw produced transfers: %+v", tr.transfers[before:])
	}
}

func TestConfigSetters(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()

	if err := pool.SetFeeRate(ctx, admin, 3); err != nil {
		t.Fatalf("SetFeeRate error: %v", err)
	}
	if err := pool.SetFeeRate(ctx, admin, 15); !errors.Is(err, domain.ErrInvalidFeeRate) {
		t.Fatalf("rate 15: want ErrInvalidFeeRate, got %v", err)
	}
	if err := pool.SetFeeRate(ctx, admin, -1); !errors.Is(err, domain.ErrInvalidFeeRate) {
		t.Fatalf("rate -1: want ErrInvalidFeeRate, got %v", err)
	}

	// rate 3 must have survived the failed updates
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)
	_, _ = pool.Deposit(ctx, admin, 0, 1000)
	_ = pool.ApproveRelease(ctx, admin, 0, 1, 1000)
	net, err := pool.ReleaseFunds(ctx, 0, 1)
	if err != nil || net != 970 {
		t.Fatalf("expected net 970 at 3%% fee, got %d (err %v)", net, err)
	}

	if err = pool.SetMaxCampaigns(ctx, admin, 0); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("zero max campaigns: want ErrInvalidAmount, got %v", err)
	}
	if err = pool.SetMinRelease(ctx, admin, -5); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("negative min release: want ErrInvalidAmount, got %v", err)
	}
	if err = pool.SetMaxRelease(ctx, admin, 0); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("zero max release: want ErrInvalidAmount, got %v", err)
	}
	if err = pool.SetMaxCampaigns(ctx, "ST9MALLORY", 10); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("unauthorized setter: want ErrNotAuthorized, got %v", err)
	}
}

func TestSetAuthority(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()

	if err := pool.SetAuthority(ctx, admin, admin); !errors.Is(err, domain.ErrInvalidRecipient) {
		t.Fatalf("admin as authority: want ErrInvalidRecipient, got %v", err)
	}
	next := domain.Principal("ST3AUTH")
	if err := pool.SetAuthority(ctx, admin, next); err != nil {
		t.Fatalf("SetAuthority error: %v", err)
	}
	// the new authority can exercise the role
	if err := pool.SetMinRelease(ctx, next, 10); err != nil {
		t.Fatalf("new authority rejected: %v", err)
	}
	if err := pool.SetAuthority(ctx, "ST9MALLORY", next); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("unauthorized caller: want ErrNotAuthorized, got %v", err)
	}
}

// TotalFunds must track the sum of campaign balances across a mixed
// sequence of deposits, withdrawals and releases.
func TestTotalFundsInvariant(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "A", "a", 1000, recipient)
	_, _ = pool.CreateCampaign(ctx, "B", "b", 1000, "ST4OTHER")

	_, _ = pool.Deposit(ctx, admin, 0, 700)
	_, _ = pool.Deposit(ctx, admin, 1, 300)
	_, _ = pool.EmergencyWithdraw(ctx, admin, 0, 200)
	_ = pool.ApproveRelease(ctx, admin, 1, 1, 300)
	_, _ = pool.ReleaseFunds(ctx, 1, 1)

	sum := pool.Campaign(ctx, 0).Balance + pool.Campaign(ctx, 1).Balance
	if total := pool.TotalFunds(ctx); total != sum {
		t.Fatalf("total funds %d diverged from balance sum %d", total, sum)
	}
	if sum != 500 {
		t.Fatalf("expected remaining escrow 500, got %d", sum)
	}
}

// TestConcurrentDeposits hammers one campaign from many goroutines; the
// engine's per-call lock must keep the accounting exact.
func TestConcurrentDeposits(t *testing.T) {
	pool, _ := newTestPool(t)
	ctx := context.Background()
	_, _ = pool.CreateCampaign(ctx, "Campaign1", "Desc1", 1000, recipient)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, _ = pool.Deposit(ctx, admin, 0, 10)
		}()
	}
	wg.Wait()

	if c := pool.Campaign(ctx, 0); c.Balance != workers*10 {
		t.Fatalf("expected balance %d, got %d", workers*10, c.Balance)
	}
	if total := pool.TotalFunds(ctx); total != workers*10 {
		t.Fatalf("expected total funds %d, got %d", workers*10, total)
	}
}
