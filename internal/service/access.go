package service

import (
	"context"

	"warranty-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Authenticate is a plain lookup in the passcode table. It deters casual
// misuse and nothing more.
func Authenticate(shopID, passcode string, credentials map[string]string) bool {
	want, ok := credentials[shopID]
	return ok && want == passcode
}

func (s *warrantyService) Login(ctx context.Context, sess *domain.Session, shopID, passcode string) error {
	if !Authenticate(shopID, passcode, s.catalog.Passcodes) {
		log.WithField("shop", shopID).Warn("Shop login rejected")
		return domain.ErrAuthRejected
	}
	sess.Login(shopID)
	log.WithField("shop", shopID).Info("Shop logged in")
	return nil
}

func (s *warrantyService) Logout(ctx context.Context, sess *domain.Session) {
	sess.Logout()
}
