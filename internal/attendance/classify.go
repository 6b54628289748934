package attendance

import (
	"regexp"
	"strings"
	"time"

	"attendance-bot-backend/internal/calendar"
)

// Unknown is the sentinel used when a field cannot be extracted from an
// event's title or description.
const Unknown = "不明"

// ReporterPrefix marks the reporter line embedded in event descriptions.
// It gates cancellation: only the original reporter may delete an event.
const ReporterPrefix = "申請者: "

var (
	summaryRe  = regexp.MustCompile(`^(.+?)\s*-\s*(.+)$`)
	reporterRe = regexp.MustCompile(`申請者:\s*(.+?)(?:\n|$)`)
)

// Event is an attendance event as observed from the calendar. It is a
// read-only view; the extracted person/type/reporter fields are advisory
// display data and are not re-validated against the type table.
type Event struct {
	ID          string    `json:"id"`
	PersonName  string    `json:"personName"`
	Type        string    `json:"type"`
	Reporter    string    `json:"reporter"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"allDay"`
	LastUpdated time.Time `json:"lastUpdated"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
}

// IsAttendanceSummary reports whether a title marks an attendance event.
// This is a substring check on the type labels, so a title containing a
// label inside an unrelated word also matches; that permissiveness is
// long-standing behavior.
func IsAttendanceSummary(summary string) bool {
	for _, t := range ReportableTypes {
		if strings.Contains(summary, string(t)) {
			return true
		}
	}
	return false
}

// Classify decides whether raw belongs to the attendance domain and, if so,
// extracts the structured fields from its title and description.
func Classify(raw calendar.RawEvent) (Event, bool) {
	if !IsAttendanceSummary(raw.Summary) {
		return Event{}, false
	}

	ev := Event{
		ID:          raw.ID,
		PersonName:  Unknown,
		Type:        Unknown,
		Reporter:    Unknown,
		Start:       raw.Start,
		End:         raw.End,
		AllDay:      raw.AllDay,
		LastUpdated: raw.Updated,
		Summary:     raw.Summary,
		Description: raw.Description,
	}

	if m := summaryRe.FindStringSubmatch(raw.Summary); m != nil {
		ev.PersonName = strings.TrimSpace(m[1])
		ev.Type = strings.TrimSpace(m[2])
	}
	if m := reporterRe.FindStringSubmatch(raw.Description); m != nil {
		ev.Reporter = strings.TrimSpace(m[1])
	}

	return ev, true
}
