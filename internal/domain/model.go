package domain

import (
	"database/sql"
	"time"
)

// DateLayout is the calendar-date form used for every date column in the store.
const DateLayout = "2006-01-02"

type RedeemedStatus string

const (
	RedeemedNo  RedeemedStatus = "No"
	RedeemedYes RedeemedStatus = "Yes"
)

// WarrantyRecord is one registered unit. Row is the record's position in the
// store and its only address.
type WarrantyRecord struct {
	Row           int
	Name          string
	Phone         string
	Email         string
	Invoice       string
	Shop          string
	ProductDetail string
	PurchaseDate  time.Time
	RegisteredAt  time.Time
	Redeemed      RedeemedStatus
	RedeemedBy    string
	RedeemedAt    time.Time
}

func (r WarrantyRecord) IsRedeemed() bool {
	return r.Redeemed == RedeemedYes
}

// RedemptionDetailsKnown is false for a unit left half-written by an
// interrupted redemption: marked Yes but missing who or when.
func (r WarrantyRecord) RedemptionDetailsKnown() bool {
	return r.IsRedeemed() && r.RedeemedBy != "" && !r.RedeemedAt.IsZero()
}

type RegistrationRequest struct {
	Name         string
	Phone        string
	Email        string
	Invoice      string
	Shop         string
	PurchaseDate time.Time
}

type LookupStatus string

const (
	LookupNotFound       LookupStatus = "not_found"
	LookupFoundElsewhere LookupStatus = "found_elsewhere"
	LookupFound          LookupStatus = "found"
)

// LookupResult carries records only when Status is LookupFound.
type LookupResult struct {
	Status  LookupStatus
	Records []WarrantyRecord
}

// RegistrationNotice is what the notifier needs to confirm a registration.
// It is also the Kafka payload in queued mode.
type RegistrationNotice struct {
	RegistrationID string    `json:"registration_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Shop           string    `json:"shop"`
	Invoice        string    `json:"invoice"`
	ProductDetail  string    `json:"product_detail"`
	PurchaseDate   time.Time `json:"purchase_date"`
}

type EmailStatus string

const (
	StatusSent   EmailStatus = "sent"
	StatusFailed EmailStatus = "failed"
)

type EmailLog struct {
	RegistrationID string
	RecipientEmail string
	Subject        string
	Status         EmailStatus
	ErrorMessage   sql.NullString
}
