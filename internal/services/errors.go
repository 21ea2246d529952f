package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrMissingFields      = errors.New("missing fields")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrPriceMismatch      = errors.New("submitted price does not match catalog price")
	ErrDuplicateCartItem  = errors.New("cart item for this product already exists")
	ErrInvalidMethod      = errors.New("payment method must be card or cash")
)

// FieldErrors carries per-field validation detail back to the client,
// register-style: {"password": "Password does not match"}.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return strings.Join(parts, "; ")
}
