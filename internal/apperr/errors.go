// Package apperr is the closed error taxonomy shared by the store, the
// services, and the HTTP boundary. Handlers match these types with errors.As
// and translate them to status codes; anything else is a 500.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError: missing or malformed request fields. Raised before any
// store access.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError: unknown product or order id.
type NotFoundError struct {
	Resource string // "product" | "order"
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

// UnavailableError: product exists but is not ACTIVE.
type UnavailableError struct {
	ProductName string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("product %q is not available for purchase", e.ProductName)
}

// InsufficientStockError: requested quantity exceeds available stock.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

// ReferentialConflictError: product delete blocked by an existing order item.
type ReferentialConflictError struct {
	ProductID int64
}

func (e *ReferentialConflictError) Error() string {
	return fmt.Sprintf("product %d cannot be deleted: referenced by an order", e.ProductID)
}

// ConflictError: store-detected duplicate (unique violation).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// ReferenceError: store-detected invalid foreign key.
type ReferenceError struct {
	Msg string
}

func (e *ReferenceError) Error() string { return e.Msg }

// StorageError: any other store failure. Wraps the driver error.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage error: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError, for callers that only
// need the distinction and not the fields.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
