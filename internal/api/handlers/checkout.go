package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/coffeeshop/internal/cart"
	"github.com/jafarshop/coffeeshop/internal/domain"
	"github.com/jafarshop/coffeeshop/internal/service"
)

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	Method string       `json:"method" binding:"required,oneof=card qr"`
	Card   *CardPayload `json:"card"`
}

type CardPayload struct {
	Holder string `json:"holder"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

// HandleCheckout handles POST /v1/checkout
func HandleCheckout(checkout *service.CheckoutService, syncer *cart.Syncer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
				"notice":  domain.Failure("Choose card or QR payment."),
			})
			return
		}

		payment := service.PaymentRequest{Method: req.Method}
		if req.Card != nil {
			payment.Card = &service.CardDetails{
				Holder: req.Card.Holder,
				Number: req.Card.Number,
				Expiry: req.Card.Expiry,
				CVC:    req.Card.CVC,
			}
		}

		receipt, err := checkout.Checkout(c.Request.Context(), payment)
		if err != nil {
			logFailure(c, logger, "Checkout failed", err, zap.String("method", req.Method))
			respondError(c, err, "Payment failed. Your cart was not changed.", cartState(syncer.Store()))
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"receipt": receipt,
			"notice":  domain.Success("Payment successful! Thank you for your order."),
		})
	}
}

// HandleGetReceipt handles GET /v1/checkout/:id
func HandleGetReceipt(checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid receipt ID"})
			return
		}

		receipt, err := checkout.GetReceipt(c.Request.Context(), id)
		if err != nil {
			if statusFor(err) != http.StatusNotFound {
				logFailure(c, logger, "Failed to get receipt", err, zap.String("receipt_id", id.String()))
			}
			respondError(c, err, "Could not load the receipt.", nil)
			return
		}

		c.JSON(http.StatusOK, receipt)
	}
}

// HandleListReceipts handles GET /v1/admin/receipts
func HandleListReceipts(checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = n
		}

		receipts, err := checkout.ListReceipts(c.Request.Context(), limit)
		if err != nil {
			logFailure(c, logger, "Failed to list receipts", err)
			respondError(c, err, "Could not load receipts.", nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{"receipts": receipts})
	}
}
