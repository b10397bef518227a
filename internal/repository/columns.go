package repository

import (
	"fmt"
	"strings"
	"time"

	"warranty-service/internal/domain"
	"warranty-service/internal/validator"

	log "github.com/sirupsen/logrus"
)

// phonePrefix keeps the store from reading a phone number as an integer.
const phonePrefix = "'"

// columnNames maps each column position to its header / SQL column name.
var columnNames = map[int]string{
	domain.ColName:          "name",
	domain.ColPhone:         "phone",
	domain.ColEmail:         "email",
	domain.ColInvoice:       "invoice",
	domain.ColShop:          "shop",
	domain.ColProductDetail: "product_detail",
	domain.ColPurchaseDate:  "purchase_date",
	domain.ColRegisteredAt:  "registered_at",
	domain.ColRedeemed:      "redeemed",
	domain.ColRedeemedBy:    "redeemed_by",
	domain.ColRedeemedAt:    "redeemed_at",
}

func columnName(col int) (string, error) {
	name, ok := columnNames[col]
	if !ok {
		return "", fmt.Errorf("column %d out of range 1..%d", col, domain.NumColumns)
	}
	return name, nil
}

// RecordToRow lays a record out in store column order.
func RecordToRow(r domain.WarrantyRecord) []string {
	row := make([]string, domain.NumColumns)
	row[domain.ColName-1] = r.Name
	row[domain.ColPhone-1] = phonePrefix + r.Phone
	row[domain.ColEmail-1] = r.Email
	row[domain.ColInvoice-1] = r.Invoice
	row[domain.ColShop-1] = r.Shop
	row[domain.ColProductDetail-1] = r.ProductDetail
	row[domain.ColPurchaseDate-1] = formatDate(r.PurchaseDate)
	row[domain.ColRegisteredAt-1] = formatDate(r.RegisteredAt)
	row[domain.ColRedeemed-1] = string(r.Redeemed)
	row[domain.ColRedeemedBy-1] = r.RedeemedBy
	row[domain.ColRedeemedAt-1] = formatDate(r.RedeemedAt)
	return row
}

// RowToRecord reads a stored row back. Short rows are padded; an empty
// redeemed cell reads as No and a hand-typed "yes" as Yes.
func RowToRecord(address int, values []string) domain.WarrantyRecord {
	cells := make([]string, domain.NumColumns)
	copy(cells, values)

	redeemed := domain.RedeemedNo
	if strings.EqualFold(strings.TrimSpace(cells[domain.ColRedeemed-1]), string(domain.RedeemedYes)) {
		redeemed = domain.RedeemedYes
	}
	return domain.WarrantyRecord{
		Row:           address,
		Name:          cells[domain.ColName-1],
		Phone:         validator.NormalizeIdentifier(cells[domain.ColPhone-1]),
		Email:         cells[domain.ColEmail-1],
		Invoice:       cells[domain.ColInvoice-1],
		Shop:          cells[domain.ColShop-1],
		ProductDetail: cells[domain.ColProductDetail-1],
		PurchaseDate:  parseDate(address, cells[domain.ColPurchaseDate-1]),
		RegisteredAt:  parseDate(address, cells[domain.ColRegisteredAt-1]),
		Redeemed:      redeemed,
		RedeemedBy:    cells[domain.ColRedeemedBy-1],
		RedeemedAt:    parseDate(address, cells[domain.ColRedeemedAt-1]),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func parseDate(address int, s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		log.WithFields(log.Fields{
			"row":   address,
			"value": s,
		}).Warn("Unparseable date cell, treating as empty")
		return time.Time{}
	}
	return t
}
