package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuthRejected stays generic so callers cannot probe which shops exist.
	ErrAuthRejected    = errors.New("passcode incorrect or shop not enabled")
	ErrNotLoggedIn     = errors.New("shop login required")
	ErrAlreadyRedeemed = errors.New("unit already redeemed")
	ErrRecordNotFound  = errors.New("record not found")
	ErrNotShopRecord   = errors.New("unit was not sold by this shop")
)

// ValidationError lists every missing or malformed registration field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

type DuplicateInvoiceError struct {
	Invoice string
}

func (e *DuplicateInvoiceError) Error() string {
	return fmt.Sprintf("invoice %q is already registered", e.Invoice)
}

// IncompleteWriteError reports that only the first Written of Total rows were
// appended. The appended prefix stays in the store.
type IncompleteWriteError struct {
	Invoice string
	Written int
	Total   int
	Err     error
}

func (e *IncompleteWriteError) Error() string {
	return fmt.Sprintf("invoice %q: only %d of %d units were stored: %v", e.Invoice, e.Written, e.Total, e.Err)
}

func (e *IncompleteWriteError) Unwrap() error { return e.Err }

type RedemptionError struct {
	Row    int
	Column int
	Err    error
}

func (e *RedemptionError) Error() string {
	return fmt.Sprintf("redeem row %d: update column %d: %v", e.Row, e.Column, e.Err)
}

func (e *RedemptionError) Unwrap() error { return e.Err }

type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("record store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }
