package domain

import "context"

// Repositories bundles the stores handed to a transactional unit of work.
// All writes performed through them share one transaction.
type Repositories struct {
	Accounts AccountRepository
	Events   EventRepository
	Guests   GuestRepository
}

// TxRunner executes a unit of work inside a single storage transaction.
// The unit's writes commit together on success; any error rolls back every
// write and is re-surfaced to the caller unchanged.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}
