package service

import (
	"context"
	"fmt"

	"warranty-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Redeem claims the maintenance benefit of the unit at row for the logged-in
// shop. The three redemption cells are written one after another; if a write
// fails the unit may be left marked Yes without who or when, which lookups
// tolerate. Two shops racing on the same row both write identical values.
func (s *warrantyService) Redeem(ctx context.Context, sess *domain.Session, row int) error {
	if !sess.LoggedIn() {
		return domain.ErrNotLoggedIn
	}
	shop := sess.ShopID
	logCtx := log.WithFields(log.Fields{
		"row":  row,
		"shop": shop,
	})

	records, err := s.store.GetAllRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	record, ok := findRow(records, row)
	if !ok {
		return fmt.Errorf("row %d: %w", row, domain.ErrRecordNotFound)
	}
	if record.Shop != shop {
		logCtx.Warn("Redemption rejected: unit sold by another shop")
		return domain.ErrNotShopRecord
	}
	if record.IsRedeemed() {
		logCtx.Warn("Redemption rejected: unit already redeemed")
		return domain.ErrAlreadyRedeemed
	}

	updates := []struct {
		col   int
		value string
	}{
		{domain.ColRedeemed, string(domain.RedeemedYes)},
		{domain.ColRedeemedBy, shop},
		{domain.ColRedeemedAt, s.today().Format(domain.DateLayout)},
	}
	for _, u := range updates {
		if err := s.store.UpdateCell(ctx, row, u.col, u.value); err != nil {
			logCtx.WithError(err).WithField("column", u.col).Error("Redemption write failed")
			return &domain.RedemptionError{Row: row, Column: u.col, Err: err}
		}
	}
	logCtx.WithField("product_detail", record.ProductDetail).Info("Unit redeemed")
	return nil
}

func findRow(records []domain.WarrantyRecord, row int) (domain.WarrantyRecord, bool) {
	for _, r := range records {
		if r.Row == row {
			return r, true
		}
	}
	return domain.WarrantyRecord{}, false
}
