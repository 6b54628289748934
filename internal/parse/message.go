package parse

import (
	"errors"
	"regexp"
	"strings"

	"attendance-bot-backend/internal/attendance"
)

// Limits on parsed fields. Requests exceeding these are rejected outright.
const (
	MaxNameLength    = 50
	MaxRemarksLength = 200
	MaxDatesCount    = 31
)

var (
	// ErrFormat marks a message that does not match the structured template.
	ErrFormat = errors.New("message does not match attendance format")
	// ErrValidation marks a structurally valid message with an invalid field.
	ErrValidation = errors.New("attendance message failed validation")
)

// The template regexp uses [\s　] instead of \s because users type
// full-width spaces after the field labels and Go's \s is ASCII-only.
var (
	messageRe = regexp.MustCompile(`(?s)【勤怠連絡】[\s　]*\n[\s　]*氏名：[\s　]*(.+?)[\s　]*\n[\s　]*種別：[\s　]*(全休|午前休|午後休|遅刻|早退|特別休|休出|取消)[\s　]*\n[\s　]*日付：[\s　]*(.+?)[\s　]*\n[\s　]*備考：[\s　]*(.+)`)
	mentionRe = regexp.MustCompile(`@[\w-]+`)
)

// Request is a validated attendance request, built only from a message that
// matched the template. Dates is never empty and never longer than
// MaxDatesCount. OriginalDateText keeps the user's date-spec verbatim so
// replies echo it unchanged.
type Request struct {
	PersonName       string
	Type             attendance.Type
	Dates            []Date
	OriginalDateText string
	Remarks          string
}

// IsCancellation reports whether the request asks to delete prior events.
func (r Request) IsCancellation() bool {
	return r.Type == attendance.TypeCancellation
}

// StripMentions removes @mention markers left in the message text by the
// chat platform.
func StripMentions(text string) string {
	return strings.TrimSpace(mentionRe.ReplaceAllString(text, ""))
}

// ParseMessage matches text against the fixed attendance template:
//
//	【勤怠連絡】
//	氏名：山田太郎
//	種別：全休
//	日付：20250115
//	備考：私用のため
//
// A structural mismatch returns ErrFormat. A match with an over-long field,
// no resolvable dates, or more than MaxDatesCount dates returns
// ErrValidation.
func ParseMessage(text string) (Request, error) {
	clean := StripMentions(text)

	m := messageRe.FindStringSubmatch(clean)
	if m == nil {
		return Request{}, ErrFormat
	}

	name := strings.TrimSpace(m[1])
	typ, _ := attendance.ParseType(m[2])
	dateText := strings.TrimSpace(m[3])
	remarks := strings.TrimSpace(m[4])

	if len([]rune(name)) > MaxNameLength {
		return Request{}, ErrValidation
	}
	if len([]rune(remarks)) > MaxRemarksLength {
		return Request{}, ErrValidation
	}

	dates, err := ParseDateSpec(dateText)
	if err != nil || len(dates) == 0 {
		return Request{}, ErrValidation
	}
	if len(dates) > MaxDatesCount {
		return Request{}, ErrValidation
	}

	return Request{
		PersonName:       name,
		Type:             typ,
		Dates:            dates,
		OriginalDateText: dateText,
		Remarks:          remarks,
	}, nil
}
