package repository

import (
	"context"
	"database/sql"
	"fmt"

	"warranty-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type PostgresEmailRepository struct {
	db *sql.DB
}

func NewPostgresEmailRepository(db *sql.DB) *PostgresEmailRepository {
	return &PostgresEmailRepository{db: db}
}

func (r *PostgresEmailRepository) SaveLog(ctx context.Context, l domain.EmailLog) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	log.WithFields(log.Fields{
		"registration_id": l.RegistrationID,
		"recipient_email": l.RecipientEmail,
		"status":          l.Status,
	}).Info("Saving email log to database")

	const query = `
        INSERT INTO email_logs (registration_id, recipient_email, subject, status, error_message)
        VALUES ($1, $2, $3, $4, $5);
    `

	if _, err := r.db.ExecContext(ctx, query, l.RegistrationID, l.RecipientEmail, l.Subject, string(l.Status), nullStringOrNil(l.ErrorMessage)); err != nil {
		return fmt.Errorf("failed to insert email log: %w", err)
	}
	return nil
}

func nullStringOrNil(ns sql.NullString) interface{} {
	if ns.Valid {
		return ns.String
	}
	return nil
}

// LogEmailRepository records delivery outcomes in the application log only,
// for deployments without a database.
type LogEmailRepository struct{}

func (LogEmailRepository) SaveLog(ctx context.Context, l domain.EmailLog) error {
	entry := log.WithFields(log.Fields{
		"registration_id": l.RegistrationID,
		"recipient_email": l.RecipientEmail,
		"subject":         l.Subject,
		"status":          l.Status,
	})
	if l.ErrorMessage.Valid {
		entry.WithField("error_message", l.ErrorMessage.String).Warn("Email delivery failed")
		return nil
	}
	entry.Info("Email delivery recorded")
	return nil
}
