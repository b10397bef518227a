package service

import (
	"warranty-service/internal/domain"
	"warranty-service/internal/validator"
)

// IsDuplicate reports whether invoice is already registered. Invoices are
// unique store-wide, whoever registered them.
func IsDuplicate(records []domain.WarrantyRecord, invoice string) bool {
	candidate := validator.NormalizeInvoice(invoice)
	for _, r := range records {
		if validator.NormalizeInvoice(r.Invoice) == candidate {
			return true
		}
	}
	return false
}
