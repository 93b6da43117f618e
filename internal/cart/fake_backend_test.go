package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/coffeeshop/internal/domain"
)

type updateCall struct {
	itemID   int64
	quantity int
}

type deleteCall struct {
	itemID int64
	cartID string
}

// fakeBackend is an in-memory coffee backend
type fakeBackend struct {
	mu sync.Mutex

	cartID string
	carts  []domain.Cart

	idErr     error
	getErr    error
	addErr    error
	updateErr error
	deleteErr error
	clearErr  error

	// hooks run outside the lock
	onGetCart func()
	onUpdate  func(itemID int64, quantity int)

	getCalls int
	added    []domain.NewCartItem
	updates  []updateCall
	deletes  []deleteCall
	clears   int
}

func (f *fakeBackend) GetCartID(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cartID, f.idErr
}

func (f *fakeBackend) GetCart(ctx context.Context) ([]domain.Cart, error) {
	f.mu.Lock()
	f.getCalls++
	err := f.getErr
	snapshot := make([]domain.Cart, len(f.carts))
	for i, c := range f.carts {
		snapshot[i] = domain.Cart{ID: c.ID, Items: append([]domain.CartLineItem(nil), c.Items...)}
	}
	hook := f.onGetCart
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return snapshot, nil
}

func (f *fakeBackend) AddToCart(ctx context.Context, item domain.NewCartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, item)
	for i := range f.carts {
		if f.carts[i].ID == item.CartID {
			f.carts[i].Items = append(f.carts[i].Items, domain.CartLineItem{
				ID:        int64(100 + len(f.added)),
				CartID:    item.CartID,
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				Image:     item.ImageURL,
			})
		}
	}
	return nil
}

func (f *fakeBackend) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	f.mu.Lock()
	hook := f.onUpdate
	f.mu.Unlock()

	if hook != nil {
		hook(itemID, quantity)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updateCall{itemID: itemID, quantity: quantity})
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.carts {
		for j := range f.carts[i].Items {
			if f.carts[i].Items[j].ID == itemID {
				f.carts[i].Items[j].Quantity = quantity
			}
		}
	}
	return nil
}

func (f *fakeBackend) DeleteCartItem(ctx context.Context, itemID int64, cartID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deletes = append(f.deletes, deleteCall{itemID: itemID, cartID: cartID})
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.carts {
		items := f.carts[i].Items[:0]
		for _, item := range f.carts[i].Items {
			if item.ID != itemID {
				items = append(items, item)
			}
		}
		f.carts[i].Items = items
	}
	return nil
}

func (f *fakeBackend) ClearCart(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clears++
	if f.clearErr != nil {
		return f.clearErr
	}
	for i := range f.carts {
		f.carts[i].Items = nil
	}
	return nil
}

func (f *fakeBackend) updateCalls() []updateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]updateCall(nil), f.updates...)
}

func (f *fakeBackend) setHooks(onGetCart func(), onUpdate func(int64, int)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onGetCart = onGetCart
	f.onUpdate = onUpdate
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// latteMocha is the two-line cart used across tests
func latteMocha() *fakeBackend {
	return &fakeBackend{
		cartID: "cart-1",
		carts: []domain.Cart{{
			ID: "cart-1",
			Items: []domain.CartLineItem{
				{ID: 1, CartID: "cart-1", ProductID: 10, Name: "Latte", Price: price("2.99"), Quantity: 2},
				{ID: 2, CartID: "cart-1", ProductID: 11, Name: "Mocha", Price: price("3.19"), Quantity: 1},
			},
		}},
	}
}
