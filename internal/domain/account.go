package domain

import "time"

// AccountType distinguishes the kinds of accounts on the platform.
type AccountType string

const (
	AccountTypeCollective AccountType = "collective"
	AccountTypeUser       AccountType = "user"
	AccountTypeHost       AccountType = "host"
	AccountTypePlatform   AccountType = "platform"
)

// Account represents a collective, user, fiscal host or the platform itself.
// Every ledger entry belongs to exactly one account's ledger.
type Account struct {
	ID            string
	Slug          string
	Name          string
	Type          AccountType
	Currency      string
	HostAccountID *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Active reports whether the account manages its own balance under a fiscal
// host. Inactive accounts source funds from outside the ledger boundary, so
// their opposite entries carry no host.
func (a *Account) Active() bool {
	return a.IsActive && a.HostAccountID != nil
}

// SameHostAs reports whether both accounts are held by the same fiscal host.
func (a *Account) SameHostAs(other *Account) bool {
	if a.HostAccountID == nil || other.HostAccountID == nil {
		return false
	}
	return *a.HostAccountID == *other.HostAccountID
}
