package attendance

import "time"

// Type is one of the fixed attendance categories. The values are the exact
// labels users type into the 種別 line and that appear in event titles.
type Type string

const (
	TypeFullDay       Type = "全休"  // full-day leave
	TypeMorningHalf   Type = "午前休" // morning half-day
	TypeAfternoonHalf Type = "午後休" // afternoon half-day
	TypeLate          Type = "遅刻"  // late arrival
	TypeEarlyLeave    Type = "早退"  // early leave
	TypeSpecialLeave  Type = "特別休" // special leave
	TypeWorkOnHoliday Type = "休出"  // work on a holiday
	TypeCancellation  Type = "取消"  // cancel a prior report
)

// TypeConfig describes how one attendance type is rendered on the calendar.
// Timed types occupy a fixed time-of-day window; the rest become all-day
// events.
type TypeConfig struct {
	Label   string
	ColorID string
	Timed   bool
	Start   time.Duration // offset from local midnight
	End     time.Duration
}

// Types is the static type table. The color ids follow the Google Calendar
// palette used by the team calendar.
var Types = map[Type]TypeConfig{
	TypeFullDay:       {Label: "全休", ColorID: "4"},
	TypeMorningHalf:   {Label: "午前休", ColorID: "6", Timed: true, Start: 9 * time.Hour, End: 12 * time.Hour},
	TypeAfternoonHalf: {Label: "午後休", ColorID: "6", Timed: true, Start: 13 * time.Hour, End: 17*time.Hour + 30*time.Minute},
	TypeLate:          {Label: "遅刻", ColorID: "5", Timed: true, Start: 9 * time.Hour, End: 10*time.Hour + 30*time.Minute},
	TypeEarlyLeave:    {Label: "早退", ColorID: "5", Timed: true, Start: 16 * time.Hour, End: 17*time.Hour + 30*time.Minute},
	TypeSpecialLeave:  {Label: "特別休", ColorID: "3"},
	TypeWorkOnHoliday: {Label: "休出", ColorID: "2"},
	TypeCancellation:  {Label: "取消", ColorID: "1"},
}

// ReportableTypes lists the labels that mark a calendar event as belonging
// to the attendance domain. 取消 never appears on the calendar itself.
var ReportableTypes = []Type{
	TypeFullDay,
	TypeMorningHalf,
	TypeAfternoonHalf,
	TypeLate,
	TypeEarlyLeave,
	TypeSpecialLeave,
	TypeWorkOnHoliday,
}

// ParseType returns the Type for a 種別 label.
func ParseType(label string) (Type, bool) {
	t := Type(label)
	_, ok := Types[t]
	return t, ok
}

// Config returns the display configuration for t, falling back to the
// full-day configuration for unknown types.
func (t Type) Config() TypeConfig {
	if cfg, ok := Types[t]; ok {
		return cfg
	}
	return Types[TypeFullDay]
}
