package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/coffeeshop/internal/config"
	"github.com/jafarshop/coffeeshop/internal/domain"
	"github.com/jafarshop/coffeeshop/pkg/errors"
)

// CatalogBackend is the slice of the coffee backend the catalog needs
type CatalogBackend interface {
	ListCoffees(ctx context.Context) ([]domain.Product, error)
	CreateCoffee(ctx context.Context, input domain.ProductInput) error
	UpdateCoffee(ctx context.Context, id int64, input domain.ProductInput) error
	DeleteCoffee(ctx context.Context, id int64) error
	RemoveCoffee(ctx context.Context, id int64) error
}

// CatalogService lists and edits products and keeps the displayed listing
type CatalogService struct {
	backend      CatalogBackend
	placeholders []string
	logger       *zap.Logger

	mu      sync.RWMutex
	listing []domain.ProductView
}

// NewCatalogService creates a new catalog service
func NewCatalogService(backend CatalogBackend, cfg config.CatalogConfig, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		backend:      backend,
		placeholders: cfg.PlaceholderImages,
		logger:       logger,
	}
}

// List fetches all products, annotates them for display and returns them
// ordered by criterion
func (s *CatalogService) List(ctx context.Context, criterion domain.SortCriterion) ([]domain.ProductView, error) {
	products, err := s.backend.ListCoffees(ctx)
	if err != nil {
		s.logger.Error("Failed to list coffees", zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	views := s.annotate(products)

	s.mu.Lock()
	s.listing = views
	s.mu.Unlock()

	return sortProducts(views, criterion), nil
}

// Listing returns the last displayed listing
func (s *CatalogService) Listing(criterion domain.SortCriterion) []domain.ProductView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortProducts(s.listing, criterion)
}

// annotate assigns a placeholder image to rows without one. The annotation
// never goes back to the backend.
func (s *CatalogService) annotate(products []domain.Product) []domain.ProductView {
	views := make([]domain.ProductView, len(products))
	for i, p := range products {
		views[i] = domain.ProductView{Product: p, DisplayImage: p.ImgURL}
		if p.ImgURL == "" && len(s.placeholders) > 0 {
			views[i].DisplayImage = s.placeholders[i%len(s.placeholders)]
		}
	}
	return views
}

func sortProducts(views []domain.ProductView, criterion domain.SortCriterion) []domain.ProductView {
	return domain.SortStable(views, criterion,
		func(v domain.ProductView) string { return v.Name },
		func(v domain.ProductView) decimal.Decimal { return v.Price },
	)
}

// Create submits a new product
func (s *CatalogService) Create(ctx context.Context, input domain.ProductInput) error {
	if err := validateProductInput(input); err != nil {
		return err
	}

	if err := s.backend.CreateCoffee(ctx, input); err != nil {
		s.logger.Error("Failed to create coffee", zap.String("name", input.Name), zap.Error(err))
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Coffee created", zap.String("name", input.Name))
	return nil
}

// Update replaces a product's fields
func (s *CatalogService) Update(ctx context.Context, id int64, input domain.ProductInput) error {
	if err := validateProductInput(input); err != nil {
		return err
	}

	if err := s.backend.UpdateCoffee(ctx, id, input); err != nil {
		s.logger.Error("Failed to update coffee", zap.Int64("product_id", id), zap.Error(err))
		return fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info("Coffee updated", zap.Int64("product_id", id))
	return nil
}

// Delete deletes a product and drops it from the displayed listing.
// The backend refuses while the product sits in a cart; that rule is not
// checked here.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeleteCoffee(ctx, id); err != nil {
		s.logger.Error("Failed to delete coffee", zap.Int64("product_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.drop(id)
	return nil
}

// Remove takes a product off the listing
func (s *CatalogService) Remove(ctx context.Context, id int64) error {
	if err := s.backend.RemoveCoffee(ctx, id); err != nil {
		s.logger.Error("Failed to remove coffee from listing", zap.Int64("product_id", id), zap.Error(err))
		return fmt.Errorf("failed to remove product: %w", err)
	}

	s.drop(id)
	return nil
}

func (s *CatalogService) drop(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing := make([]domain.ProductView, 0, len(s.listing))
	for _, v := range s.listing {
		if v.ID != id {
			listing = append(listing, v)
		}
	}
	s.listing = listing
}

// Find returns products whose name contains query, ignoring case
func (s *CatalogService) Find(ctx context.Context, query string) ([]domain.ProductView, error) {
	views, err := s.List(ctx, domain.SortName)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	var matches []domain.ProductView
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.Name), query) {
			matches = append(matches, v)
		}
	}
	return matches, nil
}

func validateProductInput(input domain.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return &errors.ErrInvalidInput{Field: "name", Message: "is required"}
	}
	if input.Price.IsNegative() {
		return &errors.ErrInvalidInput{Field: "price", Message: "must not be negative"}
	}
	return nil
}

// ParseProductID parses a product id path parameter
func ParseProductID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &errors.ErrInvalidInput{Field: "id", Message: "invalid product ID"}
	}
	return id, nil
}
