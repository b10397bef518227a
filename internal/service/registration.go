package service

import (
	"context"
	"fmt"
	"strings"

	"warranty-service/internal/domain"
	"warranty-service/internal/validator"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Register stores one row per unit in the session cart and queues a
// confirmation email. It returns the number of units stored.
//
// The duplicate check and the append are not atomic: two concurrent
// registrations of the same invoice can both pass the check.
func (s *warrantyService) Register(ctx context.Context, sess *domain.Session, req domain.RegistrationRequest) (int, error) {
	if err := validator.ValidateRegistration(req, sess.Cart); err != nil {
		return 0, err
	}
	if !s.catalog.KnownShop(strings.TrimSpace(req.Shop)) {
		return 0, &domain.ValidationError{Fields: []string{"shop"}}
	}
	// A saved cart can outlive a catalog change.
	for _, item := range sess.Cart.Items {
		if !s.catalog.KnownProduct(item.Product) {
			return 0, &domain.ValidationError{Fields: []string{"cart"}}
		}
	}

	invoice := validator.NormalizeInvoice(req.Invoice)
	logCtx := log.WithFields(log.Fields{
		"invoice": invoice,
		"shop":    req.Shop,
	})

	records, err := s.store.GetAllRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load records: %w", err)
	}
	if IsDuplicate(records, invoice) {
		logCtx.Warn("Registration rejected: invoice already registered")
		return 0, &domain.DuplicateInvoiceError{Invoice: invoice}
	}

	drafts := s.expand(sess.Cart, req)
	if err := s.persist(ctx, invoice, drafts); err != nil {
		logCtx.WithError(err).Error("Failed to store registration")
		return 0, err
	}
	logCtx.WithField("units", len(drafts)).Info("Registration stored")

	if email := strings.TrimSpace(req.Email); email != "" {
		s.dispatcher.Dispatch(noticeFor(drafts))
	}
	sess.Cart.Reset()
	return len(drafts), nil
}

// expand turns each cart line of quantity N into N single-unit drafts.
func (s *warrantyService) expand(cart domain.Cart, req domain.RegistrationRequest) []domain.WarrantyRecord {
	registeredAt := s.today()
	drafts := make([]domain.WarrantyRecord, 0, cart.Units())
	for _, item := range cart.Items {
		for i := 0; i < item.Quantity; i++ {
			drafts = append(drafts, domain.WarrantyRecord{
				Name:          strings.TrimSpace(req.Name),
				Phone:         validator.NormalizeIdentifier(req.Phone),
				Email:         strings.TrimSpace(req.Email),
				Invoice:       validator.NormalizeInvoice(req.Invoice),
				Shop:          strings.TrimSpace(req.Shop),
				ProductDetail: domain.UnitDetail(item.Product),
				PurchaseDate:  req.PurchaseDate,
				RegisteredAt:  registeredAt,
				Redeemed:      domain.RedeemedNo,
			})
		}
	}
	return drafts
}

// persist appends drafts as one batch when the store supports it. Otherwise
// rows go in one at a time and a failure reports how many made it.
func (s *warrantyService) persist(ctx context.Context, invoice string, drafts []domain.WarrantyRecord) error {
	if batch, ok := s.store.(BatchAppender); ok {
		if err := batch.AppendRows(ctx, drafts); err != nil {
			return fmt.Errorf("failed to store registration: %w", err)
		}
		return nil
	}

	for i, draft := range drafts {
		if err := s.store.AppendRow(ctx, draft); err != nil {
			return &domain.IncompleteWriteError{
				Invoice: invoice,
				Written: i,
				Total:   len(drafts),
				Err:     err,
			}
		}
	}
	return nil
}

func noticeFor(drafts []domain.WarrantyRecord) domain.RegistrationNotice {
	details := make([]string, 0, len(drafts))
	for _, d := range drafts {
		details = append(details, d.ProductDetail)
	}
	first := drafts[0]
	return domain.RegistrationNotice{
		RegistrationID: uuid.NewString(),
		Email:          first.Email,
		Name:           first.Name,
		Shop:           first.Shop,
		Invoice:        first.Invoice,
		ProductDetail:  strings.Join(details, ", "),
		PurchaseDate:   first.PurchaseDate,
	}
}
