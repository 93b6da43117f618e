package domain

import "strings"

// SortCriterion selects the ordering of a derived view
type SortCriterion string

const (
	SortNone  SortCriterion = "none"
	SortName  SortCriterion = "name"
	SortPrice SortCriterion = "price"
)

// IsValid checks if the sort criterion is known
func (c SortCriterion) IsValid() bool {
	switch c {
	case SortNone, SortName, SortPrice:
		return true
	default:
		return false
	}
}

// ParseSortCriterion maps a query value to a criterion. Empty means none.
func ParseSortCriterion(s string) (SortCriterion, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortNone, true
	}
	c := SortCriterion(s)
	return c, c.IsValid()
}

// PaymentMethod is how a mock checkout is paid
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentQR   PaymentMethod = "qr"
)

// IsValid checks if the payment method is supported
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCard, PaymentQR:
		return true
	default:
		return false
	}
}

// NoticeLevel is the severity of a user-visible notice
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is the confirmation or error message shown to the user
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

func Success(msg string) Notice {
	return Notice{Level: NoticeSuccess, Message: msg}
}

func Failure(msg string) Notice {
	return Notice{Level: NoticeError, Message: msg}
}
