package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jafarshop/coffeeshop/internal/domain"
	apperrors "github.com/jafarshop/coffeeshop/pkg/errors"
)

var errBoom = errors.New("boom")

type fakeCatalog struct {
	products  []domain.Product
	listErr   error
	createErr error
	deleteErr error
	created   []domain.ProductInput
	deleted   []int64
	removed   []int64
}

func (f *fakeCatalog) ListCoffees(ctx context.Context) ([]domain.Product, error) {
	return f.products, f.listErr
}

func (f *fakeCatalog) CreateCoffee(ctx context.Context, input domain.ProductInput) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, input)
	return nil
}

func (f *fakeCatalog) UpdateCoffee(ctx context.Context, id int64, input domain.ProductInput) error {
	return f.createErr
}

func (f *fakeCatalog) DeleteCoffee(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCatalog) RemoveCoffee(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.removed = append(f.removed, id)
	return nil
}

// fakeCart is a cart backend holding a single cart
type fakeCart struct {
	items    []domain.CartLineItem
	clearErr error
	clears   int
}

func (f *fakeCart) GetCartID(ctx context.Context) (string, error) { return "cart-1", nil }

func (f *fakeCart) GetCart(ctx context.Context) ([]domain.Cart, error) {
	return []domain.Cart{{ID: "cart-1", Items: append([]domain.CartLineItem(nil), f.items...)}}, nil
}

func (f *fakeCart) AddToCart(ctx context.Context, item domain.NewCartItem) error { return nil }

func (f *fakeCart) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error { return nil }

func (f *fakeCart) DeleteCartItem(ctx context.Context, itemID int64, cartID string) error { return nil }

func (f *fakeCart) ClearCart(ctx context.Context) error {
	f.clears++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.items = nil
	return nil
}

type fakeReceipts struct {
	mu        sync.Mutex
	receipts  map[uuid.UUID]*domain.Receipt
	createErr error
}

func newFakeReceipts() *fakeReceipts {
	return &fakeReceipts{receipts: make(map[uuid.UUID]*domain.Receipt)}
}

func (f *fakeReceipts) Create(ctx context.Context, receipt *domain.Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.receipts[receipt.ID] = receipt
	return nil
}

func (f *fakeReceipts) GetByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.receipts[id]
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "receipt", ID: id.String()}
	}
	return r, nil
}

func (f *fakeReceipts) ListRecent(ctx context.Context, limit int) ([]*domain.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Receipt
	for _, r := range f.receipts {
		out = append(out, r)
	}
	return out, nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
