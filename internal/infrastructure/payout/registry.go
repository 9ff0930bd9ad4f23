// Package payout holds the concrete payout rails an expense can be paid
// over. Each provider implements usecase.PayoutProvider; the registry maps a
// payout method kind to its rail.
package payout

import (
	"fmt"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

// Registry implements usecase.PayoutProviderRegistry.
type Registry struct {
	providers map[domain.PayoutMethodKind]usecase.PayoutProvider
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[domain.PayoutMethodKind]usecase.PayoutProvider),
	}
}

// Register binds a provider to a payout method kind.
func (r *Registry) Register(kind domain.PayoutMethodKind, provider usecase.PayoutProvider) {
	r.providers[kind] = provider
}

// For resolves the provider for a payout method kind.
func (r *Registry) For(kind domain.PayoutMethodKind) (usecase.PayoutProvider, error) {
	provider, ok := r.providers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no payout provider for %s", domain.ErrValidationFailed, kind)
	}

	return provider, nil
}
