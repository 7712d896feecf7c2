package domain

import "time"

// Transfer is one movement of value on the external ledger, as recorded by
// the treasury journal.
type Transfer struct {
	ID        int64
	Reference string
	Amount    int64
	From      Principal
	To        Principal
	CreatedAt time.Time
}
