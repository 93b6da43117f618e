package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLineItem mirrors one remote cart-item record
type CartLineItem struct {
	ID          int64           `json:"id"`
	CartID      string          `json:"cart_id"`
	ProductID   int64           `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image"`
}

// Cart is a server-tracked cart with its nested line items
type Cart struct {
	ID    string
	Items []CartLineItem
}

// NewCartItem is the payload for adding a product to a cart
type NewCartItem struct {
	CartID      string
	ProductID   int64
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	ImageURL    string
}

// Product is a catalog coffee record
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImgURL      string          `json:"img_url"`
}

// ProductView is a product annotated for display. DisplayImage is local only.
type ProductView struct {
	Product
	DisplayImage string `json:"display_image"`
}

// ImageUpload carries an image file forwarded to the backend
type ImageUpload struct {
	Filename string
	Data     []byte
}

// ProductInput is the create/update payload for a product
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       *ImageUpload
}

// Receipt records a completed mock checkout
type Receipt struct {
	ID        uuid.UUID       `json:"id"`
	CartID    string          `json:"cart_id"`
	Method    PaymentMethod   `json:"method"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Items     []CartLineItem  `json:"items"`
	CardLast4 *string         `json:"card_last4,omitempty"`
	QRPayload *string         `json:"qr_payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
