package usecase

import (
	"context"
	"sync"
	"time"

	"funding-pool/internal/core/domain"
	"funding-pool/internal/core/port"
)

// PoolUseCase implements port.FundingPool. It owns all pool state: the
// configuration registry, the campaign and metadata tables and the approval
// table. A single mutex serialises every operation, so each call is an
// atomic state transition; validation runs before any write, which keeps
// failed calls free of partial mutation.
type PoolUseCase struct {
	mu sync.Mutex

	treasury port.Treasury

	admin   domain.Principal
	escrow  domain.Principal // ledger account holding deposited funds
	cfg     domain.PoolConfig
	funds   map[int64]*domain.Campaign
	meta    map[int64]*domain.CampaignMetadata
	granted map[domain.ApprovalKey]domain.Approval

	// now stamps balance and lock mutations; swapped out in tests.
	now func() time.Time
}

// Options carries the initial registry values for a new pool.
type Options struct {
	Admin         domain.Principal
	Authority     domain.Principal
	EscrowAccount domain.Principal
	MaxCampaigns  int64
	MinRelease    int64
	MaxRelease    int64
	FeeRate       int64
}

// NewPoolUseCase creates a pool with the provided treasury and initial
// configuration. Zero limits fall back to the contract defaults.
func NewPoolUseCase(treasury port.Treasury, opts Options) *PoolUseCase {
	if opts.MaxCampaigns == 0 {
		opts.MaxCampaigns = 500
	}
	if opts.MinRelease == 0 {
		opts.MinRelease = 100
	}
	if opts.MaxRelease == 0 {
		opts.MaxRelease = 1_000_000
	}
	if opts.EscrowAccount.Zero() {
		opts.EscrowAccount = "pool"
	}
	return &PoolUseCase{
		treasury: treasury,
		admin:    opts.Admin,
		escrow:   opts.EscrowAccount,
		cfg: domain.PoolConfig{
			MaxCampaigns: opts.MaxCampaigns,
			MinRelease:   opts.MinRelease,
			MaxRelease:   opts.MaxRelease,
			FeeRate:      opts.FeeRate,
			Authority:    opts.Authority,
		},
		funds:   make(map[int64]*domain.Campaign),
		meta:    make(map[int64]*domain.CampaignMetadata),
		granted: make(map[domain.ApprovalKey]domain.Approval),
		now:     time.Now,
	}
}

// isAdminOrAuthority is the shared role predicate. An unset authority never
// matches, so a zero caller cannot slip through.
func (u *PoolUseCase) isAdminOrAuthority(caller domain.Principal) bool {
	if caller == u.admin {
		return true
	}
	return !u.cfg.Authority.Zero() && caller == u.cfg.Authority
}

// validCampaignID reports whether id was ever issued.
func (u *PoolUseCase) validCampaignID(id int64) bool {
	return id >= 0 && id < u.cfg.NextCampaignID
}

// TotalFunds returns the sum of all campaign balances still in escrow.
func (u *PoolUseCase) TotalFunds(ctx context.Context) int64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cfg.TotalFunds
}

// Campaign returns a copy of the funds record for id, or nil when absent.
func (u *PoolUseCase) Campaign(ctx context.Context, id int64) *domain.Campaign {
	u.mu.Lock()
	defer u.mu.Unlock()
	c, ok := u.funds[id]
	if !ok {
		return nil
	}
	cp := *c
	return &cp
}

// Metadata returns a copy of the metadata record for id, or nil when absent.
func (u *PoolUseCase) Metadata(ctx context.Context, id int64) *domain.CampaignMetadata {
	u.mu.Lock()
	defer u.mu.Unlock()
	m, ok := u.meta[id]
	if !ok {
		return nil
	}
	cp := *m
	return &cp
}

// Approval returns the approval stored under (id, proposalID), or nil.
func (u *PoolUseCase) Approval(ctx context.Context, id, proposalID int64) *domain.Approval {
	u.mu.Lock()
	defer u.mu.Unlock()
	a, ok := u.granted[domain.ApprovalKey{CampaignID: id, ProposalID: proposalID}]
	if !ok {
		return nil
	}
	return &a
}

// SetAuthority replaces the authority principal. Appointing the
// administrator is rejected to keep the two roles distinct.
func (u *PoolUseCase) SetAuthority(ctx context.Context, caller, authority domain.Principal) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.isAdminOrAuthority(caller) {
		return domain.ErrNotAuthorized
	}
	if authority == u.admin {
		return domain.ErrInvalidRecipient
	}
	u.cfg.Authority = authority
	return nil
}

// SetMaxCampaigns replaces the campaign count ceiling.
func (u *PoolUseCase) SetMaxCampaigns(ctx context.Context, caller domain.Principal, max int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.isAdminOrAuthority(caller) {
		return domain.ErrNotAuthorized
	}
	if max <= 0 {
		return domain.ErrInvalidAmount
	}
	u.cfg.MaxCampaigns = max
	return nil
}

// SetMinRelease replaces the minimum approvable release amount.
func (u *PoolUseCase) SetMinRelease(ctx context.Context, caller domain.Principal, min int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.isAdminOrAuthority(caller) {
		return domain.ErrNotAuthorized
	}
	if min <= 0 {
		return domain.ErrInvalidAmount
	}
	u.cfg.MinRelease = min
	return nil
}

// SetMaxRelease replaces the maximum approvable release amount. There is
// deliberately no cross check against the minimum.
func (u *PoolUseCase) SetMaxRelease(ctx context.Context, caller domain.Principal, max int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.isAdminOrAuthority(caller) {
		return domain.ErrNotAuthorized
	}
	if max <= 0 {
		return domain.ErrInvalidAmount
	}
	u.cfg.MaxRelease = max
	return nil
}

// SetFeeRate replaces the platform fee rate. Valid range is 0..10 percent.
func (u *PoolUseCase) SetFeeRate(ctx context.Context, caller domain.Principal, rate int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.isAdminOrAuthority(caller) {
		return domain.ErrNotAuthorized
	}
	if rate < 0 || rate > 10 {
		return domain.ErrInvalidFeeRate
	}
	u.cfg.FeeRate = rate
	return nil
}

// CreateCampaign opens a new campaign with a zero balance and returns its
// id. Ids are sequential and never reused. The administrator may not be the
// recipient of a campaign.
func (u *PoolUseCase) CreateCampaign(ctx context.Context, name, description string, goal int64, recipient domain.Principal) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if goal <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if recipient == u.admin {
		return 0, domain.ErrInvalidRecipient
	}
	if u.cfg.NextCampaignID >= u.cfg.MaxCampaigns {
		return 0, domain.ErrMaxCampaignsExceeded
	}
	id := u.cfg.NextCampaignID
	u.funds[id] = &domain.Campaign{
		ID:        id,
		Recipient: recipient,
		UpdatedAt: u.now(),
	}
	u.meta[id] = &domain.CampaignMetadata{Name: name, Description: description, Goal: goal}
	u.cfg.NextCampaignID++
	return id, nil
}

// Deposit moves amount from the caller to the escrow account and credits the
// campaign. Locked campaigns reject deposits. Returns the new balance.
func (u *PoolUseCase) Deposit(ctx context.Context, caller domain.Principal, id, amount int64) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if !u.validCampaignID(id) {
		return 0, domain.ErrInvalidCampaignID
	}
	c, ok := u.funds[id]
	if !ok {
		return 0, domain.ErrCampaignNotFound
	}
	if c.Locked {
		return 0, domain.ErrAlreadyLocked
	}
	if _, err := u.treasury.Transfer(ctx, amount, caller, u.escrow); err != nil {
		return 0, err
	}
	c.Balance += amount
	c.UpdatedAt = u.now()
	u.cfg.TotalFunds += amount
	return c.Balance, nil
}

// Lock freezes a campaign against deposits.
func (u *PoolUseCase) Lock(ctx context.Context, caller domain.Principal, id int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.isAdminOrAuthority(caller) {
		return domain.ErrNotAuthorized
	}
	if !u.validCampaignID(id) {
		return domain.ErrInvalidCampaignID
	}
	c, ok := u.funds[id]
	if !ok {
		return domain.ErrCampaignNotFound
	}
	if c.Locked {
		return domain.ErrAlreadyLocked
	}
	c.Locked = true
	c.UpdatedAt = u.now()
	return nil
}

// Unlock lifts a freeze.
func (u *PoolUseCase) Unlock(ctx context.Context, caller domain.Principal, id int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.isAdminOrAuthority(caller) {
		return domain.ErrNotAuthorized
	}
	if !u.validCampaignID(id) {
		return domain.ErrInvalidCampaignID
	}
	c, ok := u.funds[id]
	if !ok {
		return domain.ErrCampaignNotFound
	}
	if !c.Locked {
		return domain.ErrNotLocked
	}
	c.Locked = false
	c.UpdatedAt = u.now()
	return nil
}

// UpdateMetadata overwrites a campaign's metadata. Funds are untouched.
func (u *PoolUseCase) UpdateMetadata(ctx context.Context, caller domain.Principal, id int64, name, description string, goal int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.isAdminOrAuthority(caller) {
		return domain.ErrNotAuthorized
	}
	if !u.validCampaignID(id) {
		return domain.ErrInvalidCampaignID
	}
	if _, ok := u.meta[id]; !ok {
		return domain.ErrCampaignNotFound
	}
	if goal <= 0 {
		return domain.ErrInvalidAmount
	}
	u.meta[id] = &domain.CampaignMetadata{Name: name, Description: description, Goal: goal}
	return nil
}

// EmergencyWithdraw moves amount from escrow to the administrator, skipping
// the approve/release protocol. It ignores the lock flag on purpose: it is
// the rescue path for frozen campaigns. Returns the new balance.
func (u *PoolUseCase) EmergencyWithdraw(ctx context.Context, caller domain.Principal, id, amount int64) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.isAdminOrAuthority(caller) {
		return 0, domain.ErrNotAuthorized
	}
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if !u.validCampaignID(id) {
		return 0, domain.ErrInvalidCampaignID
	}
	c, ok := u.funds[id]
	if !ok {
		return 0, domain.ErrCampaignNotFound
	}
	if c.Balance < amount {
		return 0, domain.ErrInsufficientFunds
	}
	if _, err := u.treasury.Transfer(ctx, amount, u.escrow, u.admin); err != nil {
		return 0, err
	}
	c.Balance -= amount
	c.UpdatedAt = u.now()
	u.cfg.TotalFunds -= amount
	return c.Balance, nil
}

// ApproveRelease stores a release authorisation under the caller-chosen
// proposalID, overwriting any prior approval under the same key. Funds do
// not move and the balance is not encumbered: the amount is only checked
// against the balance as of now, and re-checked at release time.
func (u *PoolUseCase) ApproveRelease(ctx context.Context, caller domain.Principal, id, proposalID, amount int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.isAdminOrAuthority(caller) {
		return domain.ErrNotAuthorized
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	if !u.validCampaignID(id) {
		return domain.ErrInvalidCampaignID
	}
	if proposalID <= 0 {
		return domain.ErrInvalidProposalID
	}
	c, ok := u.funds[id]
	if !ok {
		return domain.ErrCampaignNotFound
	}
	if c.Balance < amount {
		return domain.ErrInsufficientFunds
	}
	if amount < u.cfg.MinRelease {
		return domain.ErrInvalidMinRelease
	}
	if amount > u.cfg.MaxRelease {
		return domain.ErrInvalidMaxRelease
	}
	u.granted[domain.ApprovalKey{CampaignID: id, ProposalID: proposalID}] = domain.Approval{
		Amount:   amount,
		Approved: true,
		Releaser: caller,
	}
	return nil
}

// ReleaseFunds settles an approved proposal. The platform fee is carved out
// of the approved amount (fee first, then the net to the recipient), the
// balance drops by the full amount and the campaign is locked. Any caller
// may trigger it; authorization happened at approval time.
//
// The lock flag is neither checked nor required here: a campaign already
// locked by an earlier release can settle further approved proposals, while
// deposits stay blocked. Approvals are not consumed either; each settlement
// re-validates against the current balance.
func (u *PoolUseCase) ReleaseFunds(ctx context.Context, id, proposalID int64) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.validCampaignID(id) {
		return 0, domain.ErrInvalidCampaignID
	}
	if proposalID <= 0 {
		return 0, domain.ErrInvalidProposalID
	}
	c, ok := u.funds[id]
	if !ok {
		return 0, domain.ErrCampaignNotFound
	}
	grant, ok := u.granted[domain.ApprovalKey{CampaignID: id, ProposalID: proposalID}]
	if !ok || !grant.Approved {
		return 0, domain.ErrVoteNotApproved
	}
	if c.Balance < grant.Amount {
		return 0, domain.ErrInsufficientFunds
	}
	fee := grant.Amount * u.cfg.FeeRate / 100
	net := grant.Amount - fee
	if fee > 0 {
		if u.cfg.Authority.Zero() {
			return 0, domain.ErrAuthorityNotSet
		}
		if _, err := u.treasury.Transfer(ctx, fee, u.escrow, u.cfg.Authority); err != nil {
			return 0, err
		}
	}
	if _, err := u.treasury.Transfer(ctx, net, u.escrow, c.Recipient); err != nil {
		return 0, err
	}
	c.Balance -= grant.Amount
	c.Locked = true
	c.UpdatedAt = u.now()
	u.cfg.TotalFunds -= grant.Amount
	return net, nil
}
