// Package events describes the mutation notifications emitted after the
// backend confirmed a write.
package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	MonthCreated   Kind = "month.created"
	MonthUpdated   Kind = "month.updated"
	MonthDeleted   Kind = "month.deleted"
	BillCreated    Kind = "bill.created"
	BillUpdated    Kind = "bill.updated"
	BillDeleted    Kind = "bill.deleted"
	CommentCreated Kind = "comment.created"
	CommentUpdated Kind = "comment.updated"
	CommentDeleted Kind = "comment.deleted"
	UserBanToggled Kind = "user.ban_toggled"
)

var kinds = map[Kind]bool{
	MonthCreated: true, MonthUpdated: true, MonthDeleted: true,
	BillCreated: true, BillUpdated: true, BillDeleted: true,
	CommentCreated: true, CommentUpdated: true, CommentDeleted: true,
	UserBanToggled: true,
}

var ErrInvalidEvent = errors.New("invalid event")

// Event is the wire and storage shape of one mutation. SubjectID is the
// backend id of the month, bill or comment; ban toggles carry the user id
// in Summary since admin user ids are strings.
type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	SubjectID  int64     `json:"subject_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New stamps a fresh id and the current time.
func New(kind Kind, subjectID int64, userID, summary string) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		SubjectID:  subjectID,
		UserID:     userID,
		Summary:    summary,
		OccurredAt: time.Now().UTC(),
	}
}

func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	if !kinds[e.Kind] {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, e.Kind)
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("%w: missing occurred_at", ErrInvalidEvent)
	}
	return nil
}

// Publisher delivers events. Implementations must be safe for concurrent
// use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
