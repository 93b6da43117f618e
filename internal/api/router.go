package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/coffeeshop/internal/api/handlers"
	"github.com/jafarshop/coffeeshop/internal/api/middleware"
	"github.com/jafarshop/coffeeshop/internal/cart"
	"github.com/jafarshop/coffeeshop/internal/config"
	"github.com/jafarshop/coffeeshop/internal/service"
)

// Dependencies are the services behind the HTTP routes
type Dependencies struct {
	Cart     *cart.Syncer
	Catalog  *service.CatalogService
	Checkout *service.CheckoutService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Dependencies, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		cartRoutes := v1.Group("/cart")
		{
			cartRoutes.GET("", handlers.HandleGetCart(deps.Cart, logger))
			cartRoutes.DELETE("", handlers.HandleClearCart(deps.Cart, logger))
			cartRoutes.POST("/refresh", handlers.HandleRefreshCart(deps.Cart, logger))
			cartRoutes.POST("/items", handlers.HandleAddItem(deps.Cart, logger))
			cartRoutes.POST("/items/:id/increment", handlers.HandleIncrement(deps.Cart, logger))
			cartRoutes.POST("/items/:id/decrement", handlers.HandleDecrement(deps.Cart, logger))
			cartRoutes.DELETE("/items/:id", handlers.HandleRemoveItem(deps.Cart, logger))
		}

		v1.POST("/checkout", handlers.HandleCheckout(deps.Checkout, deps.Cart, logger))
		v1.GET("/checkout/:id", handlers.HandleGetReceipt(deps.Checkout, logger))

		v1.GET("/products", handlers.HandleListProducts(deps.Catalog, logger))
		v1.GET("/pages/about", handlers.HandleAbout())
		v1.GET("/pages/contact", handlers.HandleContact())

		// Product management and receipts
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuth(cfg.Admin, logger))
		{
			adminRoutes.POST("/products", handlers.HandleCreateProduct(deps.Catalog, logger))
			adminRoutes.PUT("/products/:id", handlers.HandleUpdateProduct(deps.Catalog, logger))
			adminRoutes.DELETE("/products/:id", handlers.HandleDeleteProduct(deps.Catalog, logger))
			adminRoutes.DELETE("/products/:id/listing", handlers.HandleRemoveProduct(deps.Catalog, logger))
			adminRoutes.GET("/receipts", handlers.HandleListReceipts(deps.Checkout, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
