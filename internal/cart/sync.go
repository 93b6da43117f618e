package cart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/im7mortal/kmutex"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jafarshop/coffeeshop/internal/domain"
	"github.com/jafarshop/coffeeshop/pkg/errors"
)

const fetchKey = "cart"

// Options tunes the sync policy
type Options struct {
	// RollbackOnFailure restores the last confirmed quantity when a
	// quantity update is rejected by the backend
	RollbackOnFailure bool
}

// Syncer turns cart intents into backend calls and folds the results into a Store
type Syncer struct {
	store   *Store
	backend Backend
	opts    Options
	logger  *zap.Logger

	// one in-flight quantity update per line item
	locks *kmutex.Kmutex
	fetch singleflight.Group
}

// NewSyncer creates a new cart syncer writing to store
func NewSyncer(store *Store, backend Backend, opts Options, logger *zap.Logger) *Syncer {
	return &Syncer{
		store:   store,
		backend: backend,
		opts:    opts,
		logger:  logger,
		locks:   kmutex.New(),
	}
}

// Store returns the read side of the cart
func (s *Syncer) Store() *Store {
	return s.store
}

// Init obtains the active cart identifier from the backend
func (s *Syncer) Init(ctx context.Context) error {
	cartID, err := s.backend.GetCartID(ctx)
	if err != nil {
		s.logger.Error("Failed to get cart ID", zap.Error(err))
		return fmt.Errorf("failed to get cart id: %w", err)
	}

	s.store.setCartID(cartID)
	s.logger.Info("Active cart", zap.String("cart_id", cartID))
	return nil
}

// FetchCart reloads the active cart. On failure the store is left untouched.
// Concurrent calls share one backend request, which outlives any single
// caller's cancellation; the backend client timeout bounds it.
func (s *Syncer) FetchCart(ctx context.Context) ([]domain.CartLineItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.fetch.DoChan(fetchKey, func() (interface{}, error) {
		since := s.store.revision()

		carts, err := s.backend.GetCart(fetchCtx)
		if err != nil {
			s.logger.Error("Failed to fetch cart", zap.Error(err))
			return nil, err
		}

		active, ok := s.selectCart(carts)
		if !ok {
			s.logger.Warn("Active cart missing from backend response",
				zap.String("cart_id", s.store.CartID()),
				zap.Int("carts", len(carts)),
			)
		}
		if s.store.CartID() == "" && active.ID != "" {
			s.store.setCartID(active.ID)
		}

		s.store.replace(active.Items, since)
		return s.store.Items(), nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to fetch cart: %w", ctx.Err())
	}
	if res.Err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", res.Err)
	}

	shared := res.Val.([]domain.CartLineItem)
	items := make([]domain.CartLineItem, len(shared))
	copy(items, shared)
	return items, nil
}

// selectCart picks the active cart out of the backend response, falling back
// to the first one. No carts means an empty cart.
func (s *Syncer) selectCart(carts []domain.Cart) (domain.Cart, bool) {
	if len(carts) == 0 {
		return domain.Cart{ID: s.store.CartID()}, true
	}

	cartID := s.store.CartID()
	if cartID == "" {
		return carts[0], true
	}
	for _, c := range carts {
		if c.ID == cartID {
			return c, true
		}
	}
	return carts[0], false
}

// AddItem adds a product to the cart. Nothing changes locally until the backend
// confirms; then the cart is refetched so the new line shows up.
func (s *Syncer) AddItem(ctx context.Context, item domain.NewCartItem) error {
	if item.CartID == "" {
		if s.store.CartID() == "" {
			if err := s.Init(ctx); err != nil {
				return err
			}
		}
		item.CartID = s.store.CartID()
	}

	if err := s.backend.AddToCart(ctx, item); err != nil {
		s.logger.Error("Failed to add item to cart",
			zap.Int64("product_id", item.ProductID),
			zap.Int("quantity", item.Quantity),
			zap.Error(err),
		)
		return fmt.Errorf("failed to add item: %w", err)
	}

	// An in-flight fetch may predate the add
	s.fetch.Forget(fetchKey)
	if _, err := s.FetchCart(ctx); err != nil {
		s.logger.Warn("Item added but cart refetch failed", zap.Error(err))
	}
	return nil
}

// Increment raises a line's quantity by one
func (s *Syncer) Increment(ctx context.Context, itemID int64) (domain.CartLineItem, error) {
	return s.adjust(ctx, itemID, 1)
}

// Decrement lowers a line's quantity by one. A line at one stays at one.
func (s *Syncer) Decrement(ctx context.Context, itemID int64) (domain.CartLineItem, error) {
	return s.adjust(ctx, itemID, -1)
}

// adjust applies the change locally first, then mirrors it to the backend.
// Updates for the same line go out one at a time carrying the newest quantity,
// so a queued update whose revision was overtaken is dropped.
func (s *Syncer) adjust(ctx context.Context, itemID int64, delta int) (domain.CartLineItem, error) {
	m, ok := s.store.adjust(itemID, delta)
	if !ok {
		return domain.CartLineItem{}, &errors.ErrNotFound{Resource: "cart item", ID: strconv.FormatInt(itemID, 10)}
	}
	if !m.changed {
		return m.item, nil
	}
	defer s.store.settle(itemID)

	s.locks.Lock(itemID)
	defer s.locks.Unlock(itemID)

	quantity, rev, ok := s.store.pending(itemID)
	if !ok {
		// removed while queued
		return m.item, nil
	}
	if rev != m.rev {
		item, _ := s.store.Item(itemID)
		return item, nil
	}

	if err := s.backend.UpdateCartItem(ctx, itemID, quantity); err != nil {
		s.logger.Error("Failed to update cart item quantity",
			zap.Int64("item_id", itemID),
			zap.Int("quantity", quantity),
			zap.Bool("rollback", s.opts.RollbackOnFailure),
			zap.Error(err),
		)
		if s.opts.RollbackOnFailure {
			s.store.rollback(itemID, rev)
		}
		item, _ := s.store.Item(itemID)
		return item, fmt.Errorf("failed to update quantity: %w", err)
	}

	s.store.confirm(itemID, quantity)
	item, _ := s.store.Item(itemID)
	return item, nil
}

// Remove deletes a line on the backend first and drops it locally only on success
func (s *Syncer) Remove(ctx context.Context, itemID int64) error {
	item, ok := s.store.Item(itemID)
	if !ok {
		return &errors.ErrNotFound{Resource: "cart item", ID: strconv.FormatInt(itemID, 10)}
	}

	cartID := item.CartID
	if cartID == "" {
		cartID = s.store.CartID()
	}

	s.locks.Lock(itemID)
	defer s.locks.Unlock(itemID)

	if err := s.backend.DeleteCartItem(ctx, itemID, cartID); err != nil {
		s.logger.Error("Failed to delete cart item",
			zap.Int64("item_id", itemID),
			zap.String("cart_id", cartID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to remove item: %w", err)
	}

	s.store.remove(itemID)
	return nil
}

// Clear empties the cart on the backend, then locally
func (s *Syncer) Clear(ctx context.Context) error {
	if err := s.backend.ClearCart(ctx); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("cart_id", s.store.CartID()), zap.Error(err))
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.store.clear()
	return nil
}
