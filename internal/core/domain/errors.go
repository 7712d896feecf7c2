package domain

import "errors"

// The flat error taxonomy of the pool. Every failed operation returns exactly
// one of these and leaves all state untouched; validation always precedes
// mutation, so there is nothing to roll back.
var (
	ErrNotAuthorized        = errors.New("not authorized")
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrVoteNotApproved      = errors.New("release not approved")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrAlreadyLocked        = errors.New("campaign already locked")
	ErrNotLocked            = errors.New("campaign not locked")
	ErrInvalidCampaignID    = errors.New("invalid campaign id")
	ErrInvalidProposalID    = errors.New("invalid proposal id")
	ErrInvalidRecipient     = errors.New("invalid recipient")
	ErrMaxCampaignsExceeded = errors.New("max campaigns exceeded")
	ErrInvalidMinRelease    = errors.New("amount below minimum release")
	ErrInvalidMaxRelease    = errors.New("amount above maximum release")
	ErrInvalidFeeRate       = errors.New("invalid fee rate")
	ErrAuthorityNotSet      = errors.New("authority principal not set")
)
