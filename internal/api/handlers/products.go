package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/coffeeshop/internal/domain"
	"github.com/jafarshop/coffeeshop/internal/service"
	"github.com/jafarshop/coffeeshop/pkg/errors"
)

const maxImageSize = 10 << 20

// HandleListProducts handles GET /v1/products
func HandleListProducts(catalog *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		criterion, ok := parseSort(c)
		if !ok {
			return
		}

		products, err := catalog.List(c.Request.Context(), criterion)
		if err != nil {
			logFailure(c, logger, "Failed to list products", err)
			respondError(c, err, "Could not load coffees.", gin.H{"products": []domain.ProductView{}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// HandleCreateProduct handles POST /v1/admin/products
func HandleCreateProduct(catalog *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := bindProductForm(c)
		if err != nil {
			respondError(c, err, "", nil)
			return
		}

		if err := catalog.Create(c.Request.Context(), input); err != nil {
			logFailure(c, logger, "Failed to create coffee", err, zap.String("name", input.Name))
			respondError(c, err, "Failed to create coffee.", nil)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"notice": domain.Success("Coffee created successfully!")})
	}
}

// HandleUpdateProduct handles PUT /v1/admin/products/:id
func HandleUpdateProduct(catalog *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := service.ParseProductID(c.Param("id"))
		if err != nil {
			respondError(c, err, "", nil)
			return
		}

		input, err := bindProductForm(c)
		if err != nil {
			respondError(c, err, "", nil)
			return
		}

		if err := catalog.Update(c.Request.Context(), id, input); err != nil {
			logFailure(c, logger, "Failed to update coffee", err, zap.Int64("product_id", id))
			respondError(c, err, "Failed to update coffee.", nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{"notice": domain.Success("Coffee updated successfully!")})
	}
}

// HandleDeleteProduct handles DELETE /v1/admin/products/:id
func HandleDeleteProduct(catalog *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return handleDrop(catalog, logger, catalog.Delete, "Coffee was deleted successfully!")
}

// HandleRemoveProduct handles DELETE /v1/admin/products/:id/listing
func HandleRemoveProduct(catalog *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return handleDrop(catalog, logger, catalog.Remove, "Coffee was removed from the listing!")
}

type dropFunc func(ctx context.Context, id int64) error

func handleDrop(catalog *service.CatalogService, logger *zap.Logger, drop dropFunc, success string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := service.ParseProductID(c.Param("id"))
		if err != nil {
			respondError(c, err, "", nil)
			return
		}

		if err := drop(c.Request.Context(), id); err != nil {
			logFailure(c, logger, "Failed to delete coffee", err, zap.Int64("product_id", id))
			// The backend refuses while the coffee sits in a cart
			respondError(c, err, "Failed to delete coffee. Coffee cannot be on the cart!", nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"notice":   domain.Success(success),
			"products": catalog.Listing(domain.SortNone),
		})
	}
}

// bindProductForm reads the multipart product form. The image is optional.
func bindProductForm(c *gin.Context) (domain.ProductInput, error) {
	input := domain.ProductInput{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: c.PostForm("description"),
	}

	price, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("price")))
	if err != nil {
		return input, &errors.ErrInvalidInput{Field: "price", Message: "must be a number"}
	}
	input.Price = price

	fh, err := c.FormFile("image")
	if err == http.ErrMissingFile || err == http.ErrNotMultipart {
		return input, nil
	}
	if err != nil {
		return input, &errors.ErrInvalidInput{Field: "image", Message: "could not read upload"}
	}
	if fh.Size > maxImageSize {
		return input, &errors.ErrInvalidInput{Field: "image", Message: "must be at most 10MB"}
	}

	f, err := fh.Open()
	if err != nil {
		return input, &errors.ErrInvalidInput{Field: "image", Message: "could not read upload"}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return input, &errors.ErrInvalidInput{Field: "image", Message: "could not read upload"}
	}
	input.Image = &domain.ImageUpload{Filename: fh.Filename, Data: data}
	return input, nil
}
