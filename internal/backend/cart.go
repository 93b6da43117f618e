package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jafarshop/coffeeshop/internal/domain"
	"github.com/jafarshop/coffeeshop/pkg/errors"
)

// GetCartID obtains the active cart identifier
func (c *Client) GetCartID(ctx context.Context) (string, error) {
	const op = "get cart id"

	req, err := c.newRequest(ctx, http.MethodGet, CartIDPath, nil, "")
	if err != nil {
		return "", err
	}

	body, err := c.send(op, req)
	if err != nil {
		return "", err
	}

	return parseCartID(op, body)
}

func parseCartID(op string, body []byte) (string, error) {
	// {"cartId": ...} or {"id": ...}
	var obj cartIDResponse
	if err := decode(op, body, &obj); err == nil && obj.value() != "" {
		return obj.value(), nil
	}

	// [{"id": ...}]
	var list []cartIDResponse
	if err := decode(op, body, &list); err == nil && len(list) > 0 && list[0].value() != "" {
		return list[0].value(), nil
	}

	// bare "abc" or 42
	var bare flexString
	if err := decode(op, body, &bare); err == nil && bare != "" {
		return string(bare), nil
	}

	return "", &errors.ErrBackend{Op: op, Kind: errors.KindDecode, Err: fmt.Errorf("no cart id in response")}
}

// GetCart fetches every cart with its nested line items
func (c *Client) GetCart(ctx context.Context) ([]domain.Cart, error) {
	const op = "get cart"

	req, err := c.newRequest(ctx, http.MethodGet, CartPath, nil, "")
	if err != nil {
		return nil, err
	}

	body, err := c.send(op, req)
	if err != nil {
		return nil, err
	}

	var records []cartRecord
	if err := decode(op, body, &records); err != nil {
		return nil, err
	}

	carts := make([]domain.Cart, len(records))
	for i, r := range records {
		carts[i] = r.toDomain()
	}
	return carts, nil
}

// AddToCart creates a new line item in the given cart
func (c *Client) AddToCart(ctx context.Context, item domain.NewCartItem) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, AddToCartPath, addToCartRequest{
		CartID:      item.CartID,
		CoffeeName:  item.Name,
		CoffeeDesc:  item.Description,
		CoffeeID:    item.ProductID,
		Quantity:    item.Quantity,
		CoffeePrice: item.Price.InexactFloat64(),
		ImgURL:      item.ImageURL,
	})
	if err != nil {
		return err
	}

	_, err = c.send("add to cart", req)
	return err
}

// UpdateCartItem sets the absolute quantity of a line item
func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	req, err := c.newJSONRequest(ctx, http.MethodPut, UpdateCartItemPath, updateCartItemRequest{
		CartItemID: itemID,
		Quantity:   quantity,
	})
	if err != nil {
		return err
	}

	_, err = c.send("update cart item", req)
	return err
}

// DeleteCartItem deletes a line item from its cart
func (c *Client) DeleteCartItem(ctx context.Context, itemID int64, cartID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, deleteCartItemPath(itemID, cartID), nil, "")
	if err != nil {
		return err
	}

	_, err = c.send("delete cart item", req)
	return err
}

// ClearCart empties the active cart
func (c *Client) ClearCart(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodDelete, ClearCartPath, nil, "")
	if err != nil {
		return err
	}

	_, err = c.send("clear cart", req)
	return err
}
