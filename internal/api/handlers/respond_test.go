package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jafarshop/coffeeshop/pkg/errors"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", &errors.ErrInvalidInput{Field: "price", Message: "bad"}, http.StatusUnprocessableEntity},
		{"not found", &errors.ErrNotFound{Resource: "cart item", ID: "1"}, http.StatusNotFound},
		{"unauthorized", &errors.ErrUnauthorized{Message: "no"}, http.StatusUnauthorized},
		{"wrapped backend", fmt.Errorf("failed to clear cart: %w", &errors.ErrBackend{Op: "clear", Kind: errors.KindStatus, StatusCode: 500}), http.StatusBadGateway},
		{"anything else", stderrors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
