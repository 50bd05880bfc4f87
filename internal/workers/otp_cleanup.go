// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/internal/store"
)

// sweepTimeout bounds a single cleanup sweep against the database.
const sweepTimeout = 30 * time.Second

// otpCleanupWorker periodically clears expired verification codes from
// unverified accounts. Expired codes are already unusable (consumption
// checks the expiry instant), so the sweep is hygiene, not enforcement.
type otpCleanupWorker struct {
	interval   time.Duration
	users      store.UserRepository
	classifier store.ErrorClassificator
	logger     *logger.Logger
	done       chan struct{}
	stopped    chan struct{}
}

func newOTPCleanupWorker(interval time.Duration, users store.UserRepository, classifier store.ErrorClassificator, logger *logger.Logger) *otpCleanupWorker {
	return &otpCleanupWorker{
		interval:   interval,
		users:      users,
		classifier: classifier,
		logger:     logger,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

func (w *otpCleanupWorker) Run() {
	w.logger.Info().Dur("interval", w.interval).Msg("otp cleanup worker started")

	go func() {
		defer close(w.stopped)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.done:
				return
			case <-ticker.C:
				w.sweep()
			}
		}
	}()
}

func (w *otpCleanupWorker) Stop() {
	close(w.done)
	<-w.stopped
	w.logger.Info().Msg("otp cleanup worker stopped")
}

// sweep clears every expired OTP in one statement. A transient database
// failure gets a single immediate retry; anything else waits for the next
// tick.
func (w *otpCleanupWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	cleared, err := w.users.ClearExpiredOTPs(ctx, time.Now())
	if err != nil && w.classifier.Classify(err) == store.Retryable {
		w.logger.Warn().Err(err).Msg("otp cleanup sweep hit a transient error, retrying")
		cleared, err = w.users.ClearExpiredOTPs(ctx, time.Now())
	}
	if err != nil {
		w.logger.Err(err).Msg("otp cleanup sweep failed")
		return
	}

	if cleared > 0 {
		w.logger.Info().Int64("cleared", cleared).Msg("expired otp codes cleared")
	}
}
