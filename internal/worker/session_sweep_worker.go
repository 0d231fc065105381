package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Hamza287/brenvick-dashboard/internal/session"
)

// SessionSweepWorker periodically deletes expired session rows. Expired
// sessions are also cleared on hydration; the sweep catches the ones whose
// owners never came back.
type SessionSweepWorker struct {
	store    session.Store
	interval time.Duration
}

// NewSessionSweepWorker constructs a SessionSweepWorker.
func NewSessionSweepWorker(store session.Store, interval time.Duration) *SessionSweepWorker {
	return &SessionSweepWorker{
		store:    store,
		interval: interval,
	}
}

// Start begins the periodic sweep loop and listens for context cancellation.
func (w *SessionSweepWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting session sweep worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Session sweep worker stopped")
			return
		}
	}
}

func (w *SessionSweepWorker) run(ctx context.Context) {
	n, err := w.store.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep expired sessions")
		return
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Msg("Expired sessions swept")
	}
}
