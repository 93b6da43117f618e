package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jafarshop/coffeeshop/internal/domain"
)

// ReceiptRepository stores completed checkouts
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Receipt, error)
}

// Repositories groups every repository. Receipt is nil when persistence is off.
type Repositories struct {
	Receipt ReceiptRepository
}
