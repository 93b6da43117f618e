package cart

import (
	"context"

	"github.com/jafarshop/coffeeshop/internal/domain"
)

// Backend is the slice of the coffee backend the cart talks to
type Backend interface {
	GetCartID(ctx context.Context) (string, error)
	GetCart(ctx context.Context) ([]domain.Cart, error)
	AddToCart(ctx context.Context, item domain.NewCartItem) error
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) error
	DeleteCartItem(ctx context.Context, itemID int64, cartID string) error
	ClearCart(ctx context.Context) error
}
