// Package authz holds the policy side of the capability checks the use
// cases call. The core never inspects roles itself; it asks these opaque
// predicates.
package authz

import (
	"github.com/fundhost/ledger/internal/domain"
)

// RoleAuthorizer implements usecase.Authorizer with role-based rules.
type RoleAuthorizer struct{}

// NewRoleAuthorizer creates a new RoleAuthorizer.
func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{}
}

// CanApprove allows collective admins of the expense's collective, host
// admins and site admins.
func (a *RoleAuthorizer) CanApprove(actor *domain.Actor, expense *domain.Expense) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case domain.RoleSiteAdmin, domain.RoleHostAdmin:
		return true
	case domain.RoleCollectiveAdmin:
		return actor.AccountID == expense.AccountID
	default:
		return false
	}
}

// CanReject mirrors CanApprove.
func (a *RoleAuthorizer) CanReject(actor *domain.Actor, expense *domain.Expense) bool {
	return a.CanApprove(actor, expense)
}

// CanEdit allows the submitter and anyone who could approve.
func (a *RoleAuthorizer) CanEdit(actor *domain.Actor, expense *domain.Expense) bool {
	if actor == nil {
		return false
	}
	if actor.ID == expense.CreatedByID {
		return true
	}
	return a.CanApprove(actor, expense)
}

// CanPay allows host admins and site admins. Collective admins approve but
// never move the host's money.
func (a *RoleAuthorizer) CanPay(actor *domain.Actor, expense *domain.Expense) bool {
	if actor == nil {
		return false
	}
	return actor.Role == domain.RoleSiteAdmin || actor.Role == domain.RoleHostAdmin
}

// CanMarkUnpaid is reserved for site admins.
func (a *RoleAuthorizer) CanMarkUnpaid(actor *domain.Actor, expense *domain.Expense) bool {
	return actor != nil && actor.Role == domain.RoleSiteAdmin
}

// CanRefund allows host admins and site admins.
func (a *RoleAuthorizer) CanRefund(actor *domain.Actor, entry *domain.LedgerEntry) bool {
	if actor == nil {
		return false
	}
	return actor.Role == domain.RoleSiteAdmin || actor.Role == domain.RoleHostAdmin
}

// CanDelete allows the submitter and anyone who could approve; the use case
// separately refuses paid and in-flight expenses.
func (a *RoleAuthorizer) CanDelete(actor *domain.Actor, expense *domain.Expense) bool {
	return a.CanEdit(actor, expense)
}
