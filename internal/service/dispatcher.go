package service

import (
	"context"
	"sync"
	"time"

	"warranty-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

// AsyncDispatcher runs each notice through a Notifier on its own goroutine.
// Errors and panics are logged and go no further.
type AsyncDispatcher struct {
	notifier Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewAsyncDispatcher(notifier Notifier, timeout time.Duration) *AsyncDispatcher {
	return &AsyncDispatcher{notifier: notifier, timeout: timeout}
}

func (d *AsyncDispatcher) Dispatch(notice domain.RegistrationNotice) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{
					"registration_id": notice.RegistrationID,
					"panic":           r,
				}).Error("Notifier panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.notifier.Notify(ctx, notice); err != nil {
			log.WithError(err).WithField("registration_id", notice.RegistrationID).Error("Failed to dispatch registration notice")
		}
	}()
}

// Wait blocks until every dispatched notice has been handled.
func (d *AsyncDispatcher) Wait() {
	d.wg.Wait()
}
