package service

import (
	"context"

	"warranty-service/internal/domain"
)

// RecordStore is the positional row store holding every registered unit.
type RecordStore interface {
	GetAllRecords(ctx context.Context) ([]domain.WarrantyRecord, error)
	AppendRow(ctx context.Context, record domain.WarrantyRecord) error
	UpdateCell(ctx context.Context, row, col int, value string) error
}

// BatchAppender is implemented by stores that can append several rows
// atomically.
type BatchAppender interface {
	AppendRows(ctx context.Context, records []domain.WarrantyRecord) error
}

// EmailRepository defines the interface for email log data access
type EmailRepository interface {
	SaveLog(ctx context.Context, log domain.EmailLog) error
}

// Notifier delivers a registration confirmation, or hands it to something
// that will.
type Notifier interface {
	Notify(ctx context.Context, notice domain.RegistrationNotice) error
}

// Dispatcher sends notices without blocking the caller or reporting failure
// back to it.
type Dispatcher interface {
	Dispatch(notice domain.RegistrationNotice)
}
