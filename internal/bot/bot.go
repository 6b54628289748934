// Package bot turns structured chat messages into calendar mutations and
// renders the reply sent back to the user.
package bot

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"attendance-bot-backend/internal/attendance"
	"attendance-bot-backend/internal/calendar"
	"attendance-bot-backend/internal/parse"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Service handles inbound attendance messages against a calendar store.
type Service struct {
	cal calendar.Store
	loc *time.Location
}

// NewService creates a bot service operating in the given timezone.
func NewService(cal calendar.Store, loc *time.Location) *Service {
	return &Service{cal: cal, loc: loc}
}

// HandleMessage processes one inbound message from sender and returns the
// reply text. An empty message yields the help text; a malformed one yields
// the format help. Parse failures never escalate past this method.
func (s *Service) HandleMessage(ctx context.Context, sender, text string) string {
	clean := parse.StripMentions(text)
	if clean == "" {
		return helpMessage(sender)
	}

	req, err := parse.ParseMessage(clean)
	if err != nil {
		if !errors.Is(err, parse.ErrFormat) && !errors.Is(err, parse.ErrValidation) {
			log.Printf("unexpected parse error from %s: %v", sender, err)
		}
		return formatErrorMessage()
	}

	if req.IsCancellation() {
		return s.removeFromCalendar(ctx, req, sender)
	}
	return s.addToCalendar(ctx, req, sender)
}

// addToCalendar creates one event per requested date. Insertions are
// attempted independently; a failed date is counted and the loop continues.
// A store-level outage aborts with a single top-level error reply.
func (s *Service) addToCalendar(ctx context.Context, req parse.Request, reporter string) string {
	cfg := req.Type.Config()
	succeeded := 0
	failed := 0

	for _, d := range req.Dates {
		input := calendar.EventInput{
			Summary:     req.PersonName + " - " + cfg.Label,
			Description: "備考: " + req.Remarks + "\n" + attendance.ReporterPrefix + reporter,
			ColorID:     cfg.ColorID,
			Span:        s.spanFor(cfg, d),
		}

		if _, err := s.cal.Insert(ctx, input); err != nil {
			if errors.Is(err, calendar.ErrUnavailable) {
				return msgCalendarError + err.Error()
			}
			log.Printf("failed to insert %s event for %s on %s: %v", cfg.Label, req.PersonName, d, err)
			failed++
			continue
		}
		succeeded++
	}

	return createSummaryMessage(req, reporter, succeeded, failed)
}

// removeFromCalendar deletes the requested person's events on each requested
// date. Only events whose description records reporter as the original
// applicant are eligible; a mismatch is indistinguishable from having no
// matching events.
func (s *Service) removeFromCalendar(ctx context.Context, req parse.Request, reporter string) string {
	deleted := 0
	failed := 0

	for _, d := range req.Dates {
		matches, err := s.searchEvents(ctx, d, req.PersonName, reporter)
		if err != nil {
			if errors.Is(err, calendar.ErrUnavailable) {
				return msgDeleteError + err.Error()
			}
			log.Printf("failed to search events on %s: %v", d, err)
			failed++
			continue
		}

		for _, ev := range matches {
			if err := s.cal.Delete(ctx, ev.ID); err != nil {
				log.Printf("failed to delete event %s: %v", ev.ID, err)
				failed++
				continue
			}
			deleted++
		}
	}

	return cancelSummaryMessage(req, reporter, deleted, failed)
}

// searchEvents lists one date's full-day window and filters to events whose
// title contains the person's name (whitespace-insensitive) and whose
// description names reporter as the applicant.
func (s *Service) searchEvents(ctx context.Context, d parse.Date, personName, reporter string) ([]calendar.RawEvent, error) {
	dayStart := d.Time(s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := s.cal.List(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	wantName := whitespaceRe.ReplaceAllString(personName, "")
	wantReporter := attendance.ReporterPrefix + reporter

	var matches []calendar.RawEvent
	for _, ev := range events {
		gotName := whitespaceRe.ReplaceAllString(ev.Summary, "")
		if !strings.Contains(gotName, wantName) {
			continue
		}
		if !strings.Contains(ev.Description, wantReporter) {
			continue
		}
		matches = append(matches, ev)
	}
	return matches, nil
}

// spanFor anchors the type's window to a calendar date, or covers the whole
// day for untimed types.
func (s *Service) spanFor(cfg attendance.TypeConfig, d parse.Date) calendar.Span {
	midnight := d.Time(s.loc)
	if !cfg.Timed {
		return calendar.AllDaySpan{Date: midnight}
	}
	return calendar.TimedSpan{
		Start: midnight.Add(cfg.Start),
		End:   midnight.Add(cfg.End),
	}
}
