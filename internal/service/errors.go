package service

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrInvalidID          = errors.New("invalid id format")   // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrConflict           = errors.New("conflict")            // 400 on signup
	ErrCartEmpty          = errors.New("cart is empty")       // 400
	ErrProductNotFound    = errors.New("product not found")   // 400 while placing an order
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrInvalidRole        = errors.New("invalid user role")   // 400, wraps ErrValidation
)

// ProductMissingError names the product an order referenced but the catalog lacks.
type ProductMissingError struct {
	ProductID string
}

func (e *ProductMissingError) Error() string {
	return "Product with ID " + e.ProductID + " not found"
}

func (e *ProductMissingError) Unwrap() error { return ErrProductNotFound }

// checkID accepts only the canonical form ids are stored in; uuid.Parse alone
// also takes urn, braced and undashed spellings.
func checkID(id string) error {
	u, err := uuid.Parse(id)
	if err != nil || u.String() != id {
		return ErrInvalidID
	}
	return nil
}
