package service

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/coffeeshop/internal/cart"
	"github.com/jafarshop/coffeeshop/internal/config"
	"github.com/jafarshop/coffeeshop/internal/domain"
	"github.com/jafarshop/coffeeshop/internal/repository"
	"github.com/jafarshop/coffeeshop/pkg/errors"
)

// CheckoutService runs the mock payment flow
type CheckoutService struct {
	syncer *cart.Syncer
	repos  *repository.Repositories
	qrBase string
	logger *zap.Logger
	now    func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(syncer *cart.Syncer, repos *repository.Repositories, cfg config.CheckoutConfig, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		syncer: syncer,
		repos:  repos,
		qrBase: cfg.QRPaymentBase,
		logger: logger,
		now:    time.Now,
	}
}

// Checkout validates the payment, clears the cart on the backend ("pay now")
// and records a receipt. If the clear fails nothing changes.
func (s *CheckoutService) Checkout(ctx context.Context, req PaymentRequest) (*domain.Receipt, error) {
	items := s.syncer.Store().Items()
	if len(items) == 0 {
		return nil, &errors.ErrInvalidInput{Field: "cart", Message: "cart is empty"}
	}

	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, &errors.ErrInvalidInput{Field: "method", Message: "must be card or qr"}
	}

	now := s.now()
	receipt := &domain.Receipt{
		ID:        uuid.New(),
		CartID:    s.syncer.Store().CartID(),
		Method:    method,
		Subtotal:  cart.SubtotalAmount(items),
		Items:     items,
		CreatedAt: now,
	}

	switch method {
	case domain.PaymentCard:
		if err := validateCard(req.Card, now); err != nil {
			return nil, err
		}
		number := normalizeCardNumber(req.Card.Number)
		last4 := number[len(number)-4:]
		receipt.CardLast4 = &last4
	case domain.PaymentQR:
		payload := s.qrPayload(receipt)
		receipt.QRPayload = &payload
	}

	if err := s.syncer.Clear(ctx); err != nil {
		return nil, err
	}

	if s.repos != nil && s.repos.Receipt != nil {
		if err := s.repos.Receipt.Create(ctx, receipt); err != nil {
			// The cart is already paid for; keep going without persistence
			s.logger.Error("Failed to store receipt", zap.String("receipt_id", receipt.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("Checkout completed",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("method", string(method)),
		zap.String("subtotal", receipt.Subtotal.StringFixed(2)),
		zap.Int("items", len(items)),
	)

	return receipt, nil
}

// qrPayload is the string a QR code for this payment would encode
func (s *CheckoutService) qrPayload(receipt *domain.Receipt) string {
	q := url.Values{}
	q.Set("ref", receipt.ID.String())
	q.Set("amount", receipt.Subtotal.StringFixed(2))
	if receipt.CartID != "" {
		q.Set("cart", receipt.CartID)
	}
	return s.qrBase + "?" + q.Encode()
}

// GetReceipt loads a stored receipt
func (s *CheckoutService) GetReceipt(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	if s.repos == nil || s.repos.Receipt == nil {
		return nil, &errors.ErrNotFound{Resource: "receipt", ID: id.String()}
	}
	return s.repos.Receipt.GetByID(ctx, id)
}

// ListReceipts returns the most recent receipts, newest first
func (s *CheckoutService) ListReceipts(ctx context.Context, limit int) ([]*domain.Receipt, error) {
	if s.repos == nil || s.repos.Receipt == nil {
		return []*domain.Receipt{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repos.Receipt.ListRecent(ctx, limit)
}
