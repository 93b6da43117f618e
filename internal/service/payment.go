package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jafarshop/coffeeshop/pkg/errors"
)

var validate = validator.New()

// CardDetails are the mock card fields entered at checkout
type CardDetails struct {
	Holder string
	Number string
	Expiry string // MM/YY
	CVC    string
}

// PaymentRequest describes how a checkout is paid
type PaymentRequest struct {
	Method string
	Card   *CardDetails
}

// validateCard checks the card fields. Nothing is charged.
func validateCard(card *CardDetails, now time.Time) error {
	if card == nil {
		return &errors.ErrInvalidInput{Field: "card", Message: "is required for card payments"}
	}
	if strings.TrimSpace(card.Holder) == "" {
		return &errors.ErrInvalidInput{Field: "card.holder", Message: "is required"}
	}

	number := normalizeCardNumber(card.Number)
	if validate.Var(number, "required,number,min=12,max=19") != nil {
		return &errors.ErrInvalidInput{Field: "card.number", Message: "must be 12 to 19 digits"}
	}
	if validate.Var(number, "luhn_checksum") != nil {
		return &errors.ErrInvalidInput{Field: "card.number", Message: "failed checksum"}
	}

	if err := validateExpiry(card.Expiry, now); err != nil {
		return err
	}

	if validate.Var(strings.TrimSpace(card.CVC), "required,number,min=3,max=4") != nil {
		return &errors.ErrInvalidInput{Field: "card.cvc", Message: "must be 3 or 4 digits"}
	}

	return nil
}

func normalizeCardNumber(raw string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(raw)
}

// validateExpiry accepts MM/YY; a card is valid through the end of its month
func validateExpiry(raw string, now time.Time) error {
	invalid := &errors.ErrInvalidInput{Field: "card.expiry", Message: "must be MM/YY"}

	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 {
		return invalid
	}
	for _, p := range parts {
		if validate.Var(p, "number,len=2") != nil {
			return invalid
		}
	}

	month, _ := strconv.Atoi(parts[0])
	if month < 1 || month > 12 {
		return invalid
	}
	year, _ := strconv.Atoi(parts[1])

	endOfMonth := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	if !now.UTC().Before(endOfMonth) {
		return &errors.ErrInvalidInput{Field: "card.expiry", Message: "card has expired"}
	}
	return nil
}
