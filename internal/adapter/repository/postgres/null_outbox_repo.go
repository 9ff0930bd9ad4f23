package postgres

import (
	"context"
	"time"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

// NullOutboxRepository discards all events. Used in tests and in the
// CLI, where nothing consumes the outbox.
type NullOutboxRepository struct{}

// NewNullOutboxRepository creates a new NullOutboxRepository.
func NewNullOutboxRepository() *NullOutboxRepository {
	return &NullOutboxRepository{}
}

func (r *NullOutboxRepository) Create(_ context.Context, _ usecase.Transaction, _ *domain.OutboxEvent) error {
	return nil
}

func (r *NullOutboxRepository) GetUnpublished(_ context.Context, _ int) ([]*domain.OutboxEvent, error) {
	return nil, nil
}

func (r *NullOutboxRepository) MarkPublished(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func (r *NullOutboxRepository) GetByAggregate(_ context.Context, _, _ string, _, _ int) ([]*domain.OutboxEvent, error) {
	return nil, nil
}

func (r *NullOutboxRepository) DeletePublished(_ context.Context, _ time.Time) error {
	return nil
}
