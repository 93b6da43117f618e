package backend

import (
	"fmt"
	"net/url"
)

// Catalog endpoints
const (
	ListCoffeesPath  = "/coffees"
	CreateCoffeePath = "/ins-coffee"
)

// Cart endpoints
const (
	CartIDPath         = "/get-cartID"
	CartPath           = "/get-cart"
	AddToCartPath      = "/add-to-cart"
	UpdateCartItemPath = "/update-cart-item"
	ClearCartPath      = "/clear-cart"
)

// Multipart field names. Create and update disagree on the image field.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldCreateImage = "img_file"
	fieldUpdateImage = "file"
)

func updateCoffeePath(id int64) string {
	return fmt.Sprintf("/update-coffee/%d", id)
}

func deleteCoffeePath(id int64) string {
	return fmt.Sprintf("/delete-coffee/%d", id)
}

func removeCoffeePath(id int64) string {
	return fmt.Sprintf("/remove-coffee/%d", id)
}

func deleteCartItemPath(itemID int64, cartID string) string {
	return fmt.Sprintf("/delete-cart-item/%d/%s", itemID, url.PathEscape(cartID))
}
