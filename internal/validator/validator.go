package validator

import (
	"errors"
	"regexp"
	"strings"

	"warranty-service/internal/domain"
)

var (
	ErrEmptyEmail         = errors.New("email is empty")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrEmptyProduct       = errors.New("product is empty")
	ErrInvalidQuantity    = errors.New("quantity must be greater than 0")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmptyEmail
	}
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmailFormat
	}
	return nil
}

func ValidateCartItem(product string, quantity int) error {
	if strings.TrimSpace(product) == "" {
		return ErrEmptyProduct
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// ValidateRegistration reports every missing required field at once. Email is
// optional but must be well formed when given.
func ValidateRegistration(req domain.RegistrationRequest, cart domain.Cart) error {
	var fields []string
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, "name")
	}
	if NormalizeIdentifier(req.Phone) == "" {
		fields = append(fields, "phone")
	}
	if strings.TrimSpace(req.Email) != "" && ValidateEmail(req.Email) != nil {
		fields = append(fields, "email")
	}
	if NormalizeInvoice(req.Invoice) == "" {
		fields = append(fields, "invoice")
	}
	if strings.TrimSpace(req.Shop) == "" {
		fields = append(fields, "shop")
	}
	if cart.IsEmpty() {
		fields = append(fields, "cart")
	}
	for _, item := range cart.Items {
		if ValidateCartItem(item.Product, item.Quantity) != nil {
			fields = append(fields, "cart")
			break
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
