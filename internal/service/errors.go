package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BrandonWrob/ExtendedManager/internal/repositories"
)

var (
	ErrValidation            = errors.New("validation failed")
	ErrNotFound              = errors.New("not found")
	ErrGone                  = errors.New("order is gone")
	ErrConflict              = errors.New("conflict")
	ErrAlreadyFulfilled      = fmt.Errorf("order already fulfilled: %w", ErrConflict)
	ErrNotReady              = errors.New("order is not ready for pickup")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInvalidConfiguration  = errors.New("invalid configuration")
	ErrCatalogFull           = errors.New("recipe catalog is full")
)

// RejectReason says which order check failed.
type RejectReason string

const (
	ReasonEmptyOrder         RejectReason = "order has no recipes"
	ReasonMissingLine        RejectReason = "order contains an empty recipe line"
	ReasonUnknownRecipe      RejectReason = "recipe is not on the menu"
	ReasonPriceMismatch      RejectReason = "price does not match the menu"
	ReasonIngredientMismatch RejectReason = "ingredients do not match the menu"
	ReasonInvalidMultiplier  RejectReason = "recipe amount must be positive"
	ReasonQuantityTooLarge   RejectReason = "order quantity is too large"
)

// RejectError is returned when a submitted order does not match the catalog.
// Line is the zero-based position of the offending line, or -1.
type RejectError struct {
	Reason RejectReason
	Line   int
	Recipe string
}

func (e *RejectError) Error() string {
	if e.Recipe != "" {
		return fmt.Sprintf("order rejected: %s: %q (line %d)", e.Reason, e.Recipe, e.Line)
	}
	if e.Line >= 0 {
		return fmt.Sprintf("order rejected: %s (line %d)", e.Reason, e.Line)
	}
	return fmt.Sprintf("order rejected: %s", e.Reason)
}

func (e *RejectError) Unwrap() error { return ErrValidation }

// InsufficientInventoryError lists every ingredient the ledger cannot cover.
type InsufficientInventoryError struct {
	// Short maps ingredient name to the missing quantity.
	Short map[string]int
	// Unstocked lists ingredients the ledger does not carry at all.
	Unstocked []string
}

func (e *InsufficientInventoryError) Error() string {
	parts := make([]string, 0, len(e.Short)+len(e.Unstocked))
	names := make([]string, 0, len(e.Short))
	for name := range e.Short {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s short by %d", name, e.Short[name]))
	}
	for _, name := range e.Unstocked {
		parts = append(parts, fmt.Sprintf("%s not stocked", name))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientInventory, strings.Join(parts, ", "))
}

func (e *InsufficientInventoryError) Unwrap() error { return ErrInsufficientInventory }

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// translate maps repository sentinels onto service errors.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, repositories.ErrDuplicate):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	default:
		return err
	}
}
