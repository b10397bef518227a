package service

import (
	"context"
	"errors"
	"strings"

	"warranty-service/internal/domain"
	"warranty-service/internal/validator"
)

func (s *warrantyService) AddToCart(ctx context.Context, sess *domain.Session, product string, quantity int) error {
	product = strings.TrimSpace(product)
	if err := validator.ValidateCartItem(product, quantity); err != nil {
		field := "product"
		if errors.Is(err, validator.ErrInvalidQuantity) {
			field = "quantity"
		}
		return &domain.ValidationError{Fields: []string{field}}
	}
	if !s.catalog.KnownProduct(product) {
		return &domain.ValidationError{Fields: []string{"product"}}
	}
	sess.Cart.Add(product, quantity)
	return nil
}

func (s *warrantyService) ResetCart(ctx context.Context, sess *domain.Session) {
	sess.Cart.Reset()
}
