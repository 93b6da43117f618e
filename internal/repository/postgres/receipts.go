package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/coffeeshop/internal/domain"
	"github.com/jafarshop/coffeeshop/pkg/errors"
)

type receiptRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *sql.DB, logger *zap.Logger) *receiptRepository {
	return &receiptRepository{
		db:     db,
		logger: logger,
	}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *domain.Receipt) error {
	query := `
		INSERT INTO receipts (id, cart_id, method, subtotal, items, card_last4, qr_payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}

	items, err := json.Marshal(receipt.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt items: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		receipt.ID,
		receipt.CartID,
		string(receipt.Method),
		receipt.Subtotal,
		string(items),
		receipt.CardLast4,
		receipt.QRPayload,
		receipt.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create receipt", zap.Error(err))
		return err
	}

	return nil
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	query := `
		SELECT id, cart_id, method, subtotal, items, card_last4, qr_payload, created_at
		FROM receipts
		WHERE id = $1
	`

	receipt, err := scanReceipt(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "receipt", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get receipt by ID", zap.Error(err))
		return nil, err
	}

	return receipt, nil
}

func (r *receiptRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Receipt, error) {
	query := `
		SELECT id, cart_id, method, subtotal, items, card_last4, qr_payload, created_at
		FROM receipts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to query receipts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var receipts []*domain.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			r.logger.Error("Failed to scan receipt", zap.Error(err))
			return nil, err
		}
		receipts = append(receipts, receipt)
	}

	return receipts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReceipt(row rowScanner) (*domain.Receipt, error) {
	var receipt domain.Receipt
	var method string
	var items []byte
	var cardLast4, qrPayload sql.NullString

	err := row.Scan(
		&receipt.ID,
		&receipt.CartID,
		&method,
		&receipt.Subtotal,
		&items,
		&cardLast4,
		&qrPayload,
		&receipt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	receipt.Method = domain.PaymentMethod(method)
	if err := json.Unmarshal(items, &receipt.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal receipt items: %w", err)
	}
	if cardLast4.Valid {
		receipt.CardLast4 = &cardLast4.String
	}
	if qrPayload.Valid {
		receipt.QRPayload = &qrPayload.String
	}

	return &receipt, nil
}
