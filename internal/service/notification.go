package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"warranty-service/internal/domain"
	"warranty-service/internal/sender"

	log "github.com/sirupsen/logrus"
)

const registrationSubject = "Warranty registration confirmed"

type notificationService struct {
	emailSender     sender.EmailSender
	emailRepository EmailRepository
	maxAttempts     int
	initialDelay    time.Duration
}

func NewNotificationService(emailSender sender.EmailSender, emailRepository EmailRepository) *notificationService {
	return &notificationService{
		emailSender:     emailSender,
		emailRepository: emailRepository,
		maxAttempts:     3,
		initialDelay:    1 * time.Second,
	}
}

func (s *notificationService) Notify(ctx context.Context, notice domain.RegistrationNotice) error {
	return s.ProcessRegistration(ctx, notice)
}

// ProcessRegistration emails the registrant and records the outcome in the
// email log. A delivery failure is recorded, not returned.
func (s *notificationService) ProcessRegistration(ctx context.Context, notice domain.RegistrationNotice) error {
	if notice.Email == "" {
		log.WithField("registration_id", notice.RegistrationID).Debug("No email address, skipping confirmation")
		return nil
	}

	purchaseDate := "not given"
	if !notice.PurchaseDate.IsZero() {
		purchaseDate = notice.PurchaseDate.Format(domain.DateLayout)
	}
	body := fmt.Sprintf(
		"Hello %s,\n\nYour warranty registration is complete.\nShop: %s\nInvoice: %s\nItems: %s\nPurchase date: %s\n\n"+
			"Within one year of purchase you are entitled to one free battery replacement and maintenance at the shop you bought from.\n",
		notice.Name,
		notice.Shop,
		notice.Invoice,
		notice.ProductDetail,
		purchaseDate,
	)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Retry sending email with exponential backoff
	delay := s.initialDelay
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = s.emailSender.SendEmail(ctx, notice.Email, registrationSubject, body)
		if err == nil {
			if attempt > 1 {
				log.WithFields(log.Fields{
					"attempt":      attempt,
					"max_attempts": s.maxAttempts,
					"email":        notice.Email,
				}).Info("Email sent successfully after retry")
			}
			break
		}

		if attempt < s.maxAttempts {
			log.WithFields(log.Fields{
				"attempt":      attempt,
				"max_attempts": s.maxAttempts,
				"error":        err,
				"email":        notice.Email,
			}).Warn("Failed to send email, retrying...")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
			}
			delay *= 2
		}
	}

	logEntry := domain.EmailLog{
		RegistrationID: notice.RegistrationID,
		RecipientEmail: notice.Email,
		Subject:        registrationSubject,
	}

	if err != nil {
		log.WithError(err).WithField("registration_id", notice.RegistrationID).Error("Failed to send confirmation email via SMTP")
		logEntry.Status = domain.StatusFailed
		logEntry.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
	} else {
		log.WithField("email", notice.Email).Info("Confirmation email sent successfully via SMTP")
		logEntry.Status = domain.StatusSent
	}

	if err := s.emailRepository.SaveLog(ctx, logEntry); err != nil {
		log.WithError(err).Error("Failed to save email log to database")
		return err
	}

	return nil
}
