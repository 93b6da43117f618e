package backend

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/coffeeshop/internal/domain"
)

// flexString accepts either a JSON string or a JSON number
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// coffeeRecord is a row returned by GET /coffees
type coffeeRecord struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImgURL      string          `json:"img_url"`
}

func (r coffeeRecord) toDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImgURL:      r.ImgURL,
	}
}

// cartRecord is one cart returned by GET /get-cart
type cartRecord struct {
	ID        flexString       `json:"id"`
	CartItems []cartItemRecord `json:"cartItems"`
}

type cartItemRecord struct {
	ID          int64           `json:"id"`
	CartID      flexString      `json:"cartId"`
	CoffeeID    int64           `json:"coffeeId"`
	CoffeeName  string          `json:"coffee_name"`
	CoffeeDesc  string          `json:"coffee_desc"`
	CoffeePrice decimal.Decimal `json:"coffee_price"`
	Quantity    int             `json:"quantity"`
	ImgURL      string          `json:"img_url"`
}

func (r cartRecord) toDomain() domain.Cart {
	cart := domain.Cart{
		ID:    string(r.ID),
		Items: make([]domain.CartLineItem, 0, len(r.CartItems)),
	}
	for _, item := range r.CartItems {
		cartID := string(item.CartID)
		if cartID == "" {
			cartID = cart.ID
		}
		cart.Items = append(cart.Items, domain.CartLineItem{
			ID:          item.ID,
			CartID:      cartID,
			ProductID:   item.CoffeeID,
			Name:        item.CoffeeName,
			Description: item.CoffeeDesc,
			Price:       item.CoffeePrice,
			Quantity:    item.Quantity,
			Image:       item.ImgURL,
		})
	}
	return cart
}

// cartIDResponse covers the object shapes GET /get-cartID may take
type cartIDResponse struct {
	CartID flexString `json:"cartId"`
	ID     flexString `json:"id"`
}

func (r cartIDResponse) value() string {
	if r.CartID != "" {
		return string(r.CartID)
	}
	return string(r.ID)
}

// addToCartRequest is the JSON body of POST /add-to-cart
type addToCartRequest struct {
	CartID      string  `json:"cartId"`
	CoffeeName  string  `json:"coffee_name"`
	CoffeeDesc  string  `json:"coffee_desc"`
	CoffeeID    int64   `json:"coffeeId"`
	Quantity    int     `json:"quantity"`
	CoffeePrice float64 `json:"coffee_price"`
	ImgURL      string  `json:"img_url"`
}

// updateCartItemRequest is the JSON body of PUT /update-cart-item
type updateCartItemRequest struct {
	CartItemID int64 `json:"cartItemId"`
	Quantity   int   `json:"quantity"`
}
