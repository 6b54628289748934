package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateRe = regexp.MustCompile(`^\d{8}$`)

// Date is a single calendar date resolved from a date-spec.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String returns the canonical YYYYMMDD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight of the date in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// ParseSingleDate parses one YYYYMMDD token. It rejects anything that is not
// exactly eight digits or does not denote a real calendar date (e.g.
// 20250230).
func ParseSingleDate(s string) (Date, error) {
	if !dateRe.MatchString(s) {
		return Date{}, fmt.Errorf("invalid date format: %q", s)
	}
	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[4:6])
	day, _ := strconv.Atoi(s[6:8])

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, fmt.Errorf("date out of range: %q", s)
	}

	// time.Date normalizes overflow (Feb 30 becomes Mar 2), so a round-trip
	// check catches dates that do not exist.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}, fmt.Errorf("not a real calendar date: %q", s)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// ParseDateSpec resolves a date-spec string into its dates. Three forms are
// accepted, checked in this order:
//
//   - comma list:  20250115,20250116 — malformed tokens are dropped, the
//     resolution fails only if no token is valid
//   - range:       20250115-20250117 — inclusive; both endpoints must parse;
//     a reversed range resolves to zero dates
//   - single date: 20250115
func ParseDateSpec(spec string) ([]Date, error) {
	input := strings.TrimSpace(spec)

	switch {
	case strings.Contains(input, ","):
		var dates []Date
		for _, token := range strings.Split(input, ",") {
			d, err := ParseSingleDate(strings.TrimSpace(token))
			if err != nil {
				continue
			}
			dates = append(dates, d)
		}
		if len(dates) == 0 {
			return nil, fmt.Errorf("no valid dates in list: %q", spec)
		}
		return dates, nil

	case strings.Contains(input, "-"):
		parts := strings.Split(input, "-")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid date range: %q", spec)
		}
		start, err := ParseSingleDate(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid range start: %w", err)
		}
		end, err := ParseSingleDate(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid range end: %w", err)
		}
		return expandRange(start, end), nil

	default:
		d, err := ParseSingleDate(input)
		if err != nil {
			return nil, err
		}
		return []Date{d}, nil
	}
}

// expandRange enumerates every date from start to end inclusive. A reversed
// range yields nil; the caller treats an empty resolution as a failure.
func expandRange(start, end Date) []Date {
	startT := start.Time(time.UTC)
	endT := end.Time(time.UTC)
	if startT.After(endT) {
		return nil
	}

	var dates []Date
	for t := startT; !t.After(endT); t = t.AddDate(0, 0, 1) {
		dates = append(dates, Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()})
	}
	return dates
}
