package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/coffeeshop/internal/cart"
	"github.com/jafarshop/coffeeshop/internal/domain"
	"github.com/jafarshop/coffeeshop/pkg/errors"
)

// CartResponse is the cart as the UI renders it
type CartResponse struct {
	CartID   string                `json:"cart_id"`
	Items    []domain.CartLineItem `json:"items"`
	Subtotal string                `json:"subtotal"`
	Notice   *domain.Notice        `json:"notice,omitempty"`
}

// AddItemRequest represents an add-to-cart payload
type AddItemRequest struct {
	ProductID   int64           `json:"product_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	Image       string          `json:"image"`
}

func cartView(store *cart.Store, criterion domain.SortCriterion) CartResponse {
	items := store.Sorted(criterion)
	if items == nil {
		items = []domain.CartLineItem{}
	}
	return CartResponse{
		CartID:   store.CartID(),
		Items:    items,
		Subtotal: cart.Subtotal(items),
	}
}

// cartState is attached to error responses so the UI keeps showing the cart
func cartState(store *cart.Store) gin.H {
	return gin.H{"cart": cartView(store, domain.SortNone)}
}

func parseSort(c *gin.Context) (domain.SortCriterion, bool) {
	criterion, ok := domain.ParseSortCriterion(c.Query("sort"))
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "invalid sort criterion",
			"notice": domain.Failure("Sort must be none, name or price."),
		})
	}
	return criterion, ok
}

func parseItemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "invalid item ID",
			"notice": domain.Failure("Invalid cart item."),
		})
		return 0, false
	}
	return id, true
}

// HandleGetCart handles GET /v1/cart. The first call loads the cart.
func HandleGetCart(syncer *cart.Syncer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		criterion, ok := parseSort(c)
		if !ok {
			return
		}

		if !syncer.Store().Loaded() {
			if _, err := syncer.FetchCart(c.Request.Context()); err != nil {
				logFailure(c, logger, "Failed to load cart", err)
				respondError(c, err, "Could not load your cart.", cartState(syncer.Store()))
				return
			}
		}

		c.JSON(http.StatusOK, cartView(syncer.Store(), criterion))
	}
}

// HandleRefreshCart handles POST /v1/cart/refresh
func HandleRefreshCart(syncer *cart.Syncer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := syncer.FetchCart(c.Request.Context()); err != nil {
			logFailure(c, logger, "Failed to refresh cart", err)
			respondError(c, err, "Could not refresh your cart.", cartState(syncer.Store()))
			return
		}

		c.JSON(http.StatusOK, cartView(syncer.Store(), domain.SortNone))
	}
}

// HandleAddItem handles POST /v1/cart/items
func HandleAddItem(syncer *cart.Syncer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
				"notice":  domain.Failure("Please check the item and try again."),
			})
			return
		}
		if req.Price.IsNegative() {
			respondError(c, &errors.ErrInvalidInput{Field: "price", Message: "must not be negative"}, "", nil)
			return
		}

		err := syncer.AddItem(c.Request.Context(), domain.NewCartItem{
			ProductID:   req.ProductID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Quantity:    req.Quantity,
			ImageURL:    req.Image,
		})
		if err != nil {
			logFailure(c, logger, "Add to cart failed", err, zap.Int64("product_id", req.ProductID))
			respondError(c, err, "Failed to add coffee to the cart.", cartState(syncer.Store()))
			return
		}

		resp := cartView(syncer.Store(), domain.SortNone)
		notice := domain.Success(req.Name + " added to cart!")
		resp.Notice = &notice
		c.JSON(http.StatusCreated, resp)
	}
}

// HandleIncrement handles POST /v1/cart/items/:id/increment
func HandleIncrement(syncer *cart.Syncer, logger *zap.Logger) gin.HandlerFunc {
	return handleAdjust(syncer, logger, syncer.Increment)
}

// HandleDecrement handles POST /v1/cart/items/:id/decrement
func HandleDecrement(syncer *cart.Syncer, logger *zap.Logger) gin.HandlerFunc {
	return handleAdjust(syncer, logger, syncer.Decrement)
}

type adjustFunc func(ctx context.Context, itemID int64) (domain.CartLineItem, error)

func handleAdjust(syncer *cart.Syncer, logger *zap.Logger, adjust adjustFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseItemID(c)
		if !ok {
			return
		}

		if _, err := adjust(c.Request.Context(), id); err != nil {
			logFailure(c, logger, "Quantity update failed", err, zap.Int64("item_id", id))
			respondError(c, err, "Failed to update the quantity.", cartState(syncer.Store()))
			return
		}

		c.JSON(http.StatusOK, cartView(syncer.Store(), domain.SortNone))
	}
}

// HandleRemoveItem handles DELETE /v1/cart/items/:id
func HandleRemoveItem(syncer *cart.Syncer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseItemID(c)
		if !ok {
			return
		}

		if err := syncer.Remove(c.Request.Context(), id); err != nil {
			logFailure(c, logger, "Remove from cart failed", err, zap.Int64("item_id", id))
			respondError(c, err, "Failed to remove the coffee from the cart.", cartState(syncer.Store()))
			return
		}

		resp := cartView(syncer.Store(), domain.SortNone)
		notice := domain.Success("Coffee removed from cart.")
		resp.Notice = &notice
		c.JSON(http.StatusOK, resp)
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(syncer *cart.Syncer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := syncer.Clear(c.Request.Context()); err != nil {
			logFailure(c, logger, "Clear cart failed", err)
			respondError(c, err, "Failed to clear the cart.", cartState(syncer.Store()))
			return
		}

		resp := cartView(syncer.Store(), domain.SortNone)
		notice := domain.Success("Cart cleared.")
		resp.Notice = &notice
		c.JSON(http.StatusOK, resp)
	}
}
