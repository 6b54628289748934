// Package digest aggregates a run's detected changes per person and renders
// the report mail.
package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"attendance-bot-backend/internal/attendance"
)

// Entry is one change line for a person: the attendance type and the
// localized date it applies to.
type Entry struct {
	Type string
	Date string
}

// PersonChanges buckets one person's applications and cancellations.
type PersonChanges struct {
	Applications  []Entry
	Cancellations []Entry
}

// Aggregate groups a run's applications and cancellations by person name.
// The date of each entry is the event's observed start time rendered in loc.
func Aggregate(applications, cancellations []attendance.Event, loc *time.Location) map[string]*PersonChanges {
	byPerson := make(map[string]*PersonChanges)

	add := func(ev attendance.Event, cancellation bool) {
		pc, ok := byPerson[ev.PersonName]
		if !ok {
			pc = &PersonChanges{}
			byPerson[ev.PersonName] = pc
		}
		entry := Entry{Type: ev.Type, Date: formatEventDate(ev.Start, loc)}
		if cancellation {
			pc.Cancellations = append(pc.Cancellations, entry)
		} else {
			pc.Applications = append(pc.Applications, entry)
		}
	}

	for _, ev := range applications {
		add(ev, false)
	}
	for _, ev := range cancellations {
		add(ev, true)
	}
	return byPerson
}

// Subject renders the digest subject line for a run at now.
func Subject(prefix string, now time.Time) string {
	return fmt.Sprintf("%sCI部_%04d/%02d/%02d-%02d時", prefix, now.Year(), now.Month(), now.Day(), now.Hour())
}

// Body renders the digest mail body with an applications and a cancellations
// section. A section with no entries renders empty.
func Body(byPerson map[string]*PersonChanges, calendarID string) string {
	applications := formatSection(byPerson, func(pc *PersonChanges) []Entry { return pc.Applications })
	cancellations := formatSection(byPerson, func(pc *PersonChanges) []Entry { return pc.Cancellations })

	return "CI部の勤怠連絡です。\n\n" +
		"【申請】\n" + applications + "\n\n" +
		"【取消】\n" + cancellations + "\n\n" +
		"---\n" +
		"このメールは「CI-休暇管理カレンダー」の自動通知メールです。\n\n" +
		"カレンダー: https://calendar.google.com/calendar/embed?src=" + calendarID
}

// formatSection renders one `    person: type (date)` line per entry, with
// people in a stable order.
func formatSection(byPerson map[string]*PersonChanges, pick func(*PersonChanges) []Entry) string {
	people := make([]string, 0, len(byPerson))
	for person := range byPerson {
		people = append(people, person)
	}
	sort.Strings(people)

	var lines []string
	for _, person := range people {
		for _, entry := range pick(byPerson[person]) {
			lines = append(lines, fmt.Sprintf("    %s: %s (%s)", person, entry.Type, entry.Date))
		}
	}
	return strings.Join(lines, "\n")
}

func formatEventDate(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return fmt.Sprintf("%d/%d/%d", local.Year(), int(local.Month()), local.Day())
}
