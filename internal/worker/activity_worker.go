package worker

import (
	"context"
	"fmt"
	"time"

	"folio/internal/events"
	"folio/internal/log"
	"folio/internal/storage"
)

// ActivityRecorder persists activity entries. *storage.SQLiteRepository
// satisfies it.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, a storage.Activity) (bool, error)
}

// TokenPurger removes stale session tokens.
type TokenPurger interface {
	PurgeTokens(ctx context.Context, cutoff time.Time, keep ...string) (int64, error)
}

// ActivityWorker turns mutation events into activity log rows and
// periodically drops browser session tokens nobody used for a while.
type ActivityWorker struct {
	recorder ActivityRecorder
	purger   TokenPurger
	logger   *log.Logger

	sessionMaxAge time.Duration
	keepKeys      []string
	now           func() time.Time
}

func NewActivityWorker(recorder ActivityRecorder, purger TokenPurger, sessionMaxAge time.Duration, logger *log.Logger, keepKeys ...string) *ActivityWorker {
	return &ActivityWorker{
		recorder:      recorder,
		purger:        purger,
		logger:        logger.WithComponent(log.ComponentWorker),
		sessionMaxAge: sessionMaxAge,
		keepKeys:      keepKeys,
		now:           time.Now,
	}
}

// HandleEvent records e. Redeliveries of an already recorded event are
// acknowledged without a second row.
func (w *ActivityWorker) HandleEvent(ctx context.Context, e events.Event) error {
	inserted, err := w.recorder.RecordActivity(ctx, storage.Activity{
		EventID:    e.ID,
		Kind:       string(e.Kind),
		SubjectID:  e.SubjectID,
		UserID:     e.UserID,
		Summary:    e.Summary,
		OccurredAt: e.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("record %s: %w", e.Kind, err)
	}

	if !inserted {
		w.logger.InfoContext(ctx, "Skipping duplicate event", log.FieldEvent, string(e.Kind), "event_id", e.ID)
		return nil
	}
	w.logger.InfoContext(ctx, "Recorded activity",
		log.FieldEvent, string(e.Kind),
		"event_id", e.ID,
		log.FieldUserID, e.UserID)
	return nil
}

// PurgeSessions deletes tokens saved longer ago than the configured max age,
// counted from login like the session cookie lifetime.
func (w *ActivityWorker) PurgeSessions(ctx context.Context) error {
	if w.purger == nil || w.sessionMaxAge <= 0 {
		return nil
	}
	cutoff := w.now().Add(-w.sessionMaxAge)
	n, err := w.purger.PurgeTokens(ctx, cutoff, w.keepKeys...)
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	if n > 0 {
		w.logger.InfoContext(ctx, "Purged expired sessions", "count", n, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}

// RunPurgeLoop calls PurgeSessions every interval until ctx is done.
// Failures are logged and the loop keeps going.
func (w *ActivityWorker) RunPurgeLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := w.PurgeSessions(ctx); err != nil {
			w.logger.ErrorContext(ctx, "Session purge failed", log.FieldError, err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
