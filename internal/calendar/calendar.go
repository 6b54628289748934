// Package calendar abstracts the shared team calendar this service mutates
// and observes. The production implementation talks to the Google Calendar
// API; tests substitute an in-memory Store.
package calendar

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a store-level failure (backend unreachable, calendar
// missing) as opposed to the failure of a single event operation. Callers
// running per-item loops abort on it instead of counting it.
var ErrUnavailable = errors.New("calendar store unavailable")

// Span is the scheduling of an event: either a whole calendar day or a fixed
// time window.
type Span interface {
	isSpan()
}

// AllDaySpan covers one full calendar day. The store is responsible for the
// exclusive end-date convention of the underlying calendar.
type AllDaySpan struct {
	Date time.Time // midnight in the event's timezone
}

// TimedSpan covers a fixed start/end window.
type TimedSpan struct {
	Start time.Time
	End   time.Time
}

func (AllDaySpan) isSpan() {}
func (TimedSpan) isSpan()  {}

// EventInput describes an event to be inserted.
type EventInput struct {
	Summary     string
	Description string
	ColorID     string
	Span        Span
}

// RawEvent is an event as observed from the calendar, before any domain
// classification.
type RawEvent struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Updated     time.Time
}

// Store is the calendar backend consumed by the bot and the diff job.
type Store interface {
	// List returns all events overlapping [start, end).
	List(ctx context.Context, start, end time.Time) ([]RawEvent, error)
	// Insert adds an event and returns its calendar-assigned id.
	Insert(ctx context.Context, ev EventInput) (string, error)
	// Delete removes the event with the given id.
	Delete(ctx context.Context, id string) error
}
