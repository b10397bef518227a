package handler

import (
	"context"
	"encoding/json"

	"warranty-service/internal/domain"
)

// NotificationService defines the interface for notification business logic
type NotificationService interface {
	ProcessRegistration(ctx context.Context, notice domain.RegistrationNotice) error
}

type registrationHandler struct {
	notificationService NotificationService
}

func NewRegistrationHandler(notificationService NotificationService) *registrationHandler {
	return &registrationHandler{notificationService: notificationService}
}

func (h *registrationHandler) HandleMessage(ctx context.Context, message []byte) error {
	var notice domain.RegistrationNotice
	if err := json.Unmarshal(message, &notice); err != nil {
		return err
	}
	return h.notificationService.ProcessRegistration(ctx, notice)
}
