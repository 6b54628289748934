package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleStore implements Store against the Google Calendar API.
type GoogleStore struct {
	svc        *gcal.Service
	calendarID string
	timezone   string
	loc        *time.Location
}

// NewGoogleStore builds a Store for one calendar using service-account
// credentials.
func NewGoogleStore(ctx context.Context, calendarID, credentialsFile, timezone string) (*GoogleStore, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}

	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	return &GoogleStore{svc: svc, calendarID: calendarID, timezone: timezone, loc: loc}, nil
}

// List returns the events overlapping [start, end), expanded to single
// instances and ordered by start time.
func (g *GoogleStore) List(ctx context.Context, start, end time.Time) ([]RawEvent, error) {
	var events []RawEvent
	pageToken := ""
	for {
		call := g.svc.Events.List(g.calendarID).
			TimeMin(start.Format(time.RFC3339)).
			TimeMax(end.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			// A failed listing means the backend itself is unreachable or
			// the calendar is gone, not that one event is bad.
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		for _, item := range resp.Items {
			ev, err := g.fromAPI(item)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}

		if resp.NextPageToken == "" {
			return events, nil
		}
		pageToken = resp.NextPageToken
	}
}

// Insert adds an event and returns the calendar-assigned id.
func (g *GoogleStore) Insert(ctx context.Context, ev EventInput) (string, error) {
	apiEvent := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		ColorId:     ev.ColorID,
	}

	switch span := ev.Span.(type) {
	case AllDaySpan:
		// All-day events use date-only start/end with an exclusive end date.
		start := span.Date.Format("2006-01-02")
		end := span.Date.AddDate(0, 0, 1).Format("2006-01-02")
		apiEvent.Start = &gcal.EventDateTime{Date: start, TimeZone: g.timezone}
		apiEvent.End = &gcal.EventDateTime{Date: end, TimeZone: g.timezone}
	case TimedSpan:
		apiEvent.Start = &gcal.EventDateTime{DateTime: span.Start.Format(time.RFC3339), TimeZone: g.timezone}
		apiEvent.End = &gcal.EventDateTime{DateTime: span.End.Format(time.RFC3339), TimeZone: g.timezone}
	default:
		return "", fmt.Errorf("unsupported event span %T", ev.Span)
	}

	inserted, err := g.svc.Events.Insert(g.calendarID, apiEvent).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}
	return inserted.Id, nil
}

// Delete removes an event by id.
func (g *GoogleStore) Delete(ctx context.Context, id string) error {
	if err := g.svc.Events.Delete(g.calendarID, id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}

// fromAPI converts an API event, handling the all-day vs timed encoding.
func (g *GoogleStore) fromAPI(item *gcal.Event) (RawEvent, error) {
	ev := RawEvent{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
	}

	if item.Updated != "" {
		updated, err := time.Parse(time.RFC3339, item.Updated)
		if err != nil {
			return RawEvent{}, fmt.Errorf("failed to parse updated time of event %s: %w", item.Id, err)
		}
		ev.Updated = updated
	}

	parseSide := func(edt *gcal.EventDateTime) (time.Time, bool, error) {
		if edt == nil {
			return time.Time{}, false, nil
		}
		if edt.Date != "" {
			t, err := time.ParseInLocation("2006-01-02", edt.Date, g.loc)
			return t, true, err
		}
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		return t, false, err
	}

	start, allDay, err := parseSide(item.Start)
	if err != nil {
		return RawEvent{}, fmt.Errorf("failed to parse start of event %s: %w", item.Id, err)
	}
	end, _, err := parseSide(item.End)
	if err != nil {
		return RawEvent{}, fmt.Errorf("failed to parse end of event %s: %w", item.Id, err)
	}

	ev.Start = start
	ev.End = end
	ev.AllDay = allDay
	return ev, nil
}
