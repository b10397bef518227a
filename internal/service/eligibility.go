package service

import (
	"context"
	"fmt"

	"warranty-service/internal/domain"
	"warranty-service/internal/validator"

	log "github.com/sirupsen/logrus"
)

// ResolveEligibility finds the units registered under phone. A shop only sees
// its own units; units sold elsewhere are reported by existence alone.
func ResolveEligibility(records []domain.WarrantyRecord, phone, shop string) domain.LookupResult {
	query := validator.NormalizeIdentifier(phone)
	if query == "" {
		return domain.LookupResult{Status: domain.LookupNotFound}
	}

	var (
		own       []domain.WarrantyRecord
		elsewhere bool
	)
	for _, r := range records {
		if validator.NormalizeIdentifier(r.Phone) != query {
			continue
		}
		if r.Shop == shop {
			own = append(own, r)
		} else {
			elsewhere = true
		}
	}

	switch {
	case len(own) > 0:
		return domain.LookupResult{Status: domain.LookupFound, Records: own}
	case elsewhere:
		return domain.LookupResult{Status: domain.LookupFoundElsewhere}
	default:
		return domain.LookupResult{Status: domain.LookupNotFound}
	}
}

func (s *warrantyService) Lookup(ctx context.Context, sess *domain.Session, phone string) (domain.LookupResult, error) {
	if !sess.LoggedIn() {
		return domain.LookupResult{}, domain.ErrNotLoggedIn
	}

	records, err := s.store.GetAllRecords(ctx)
	if err != nil {
		return domain.LookupResult{}, fmt.Errorf("failed to load records: %w", err)
	}

	result := ResolveEligibility(records, phone, sess.ShopID)
	for _, r := range result.Records {
		if r.IsRedeemed() && !r.RedemptionDetailsKnown() {
			log.WithField("row", r.Row).Warn("Unit marked redeemed without redemption details")
		}
	}
	log.WithFields(log.Fields{
		"shop":   sess.ShopID,
		"status": result.Status,
		"units":  len(result.Records),
	}).Info("Eligibility lookup")
	return result, nil
}
