package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance-bot-backend/internal/attendance"
)

func event(person, typ string, start time.Time) attendance.Event {
	return attendance.Event{PersonName: person, Type: typ, Start: start}
}

func TestAggregate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, loc)

	applications := []attendance.Event{
		event("山田太郎", "全休", day),
		event("山田太郎", "午前休", day.AddDate(0, 0, 1)),
		event("佐藤花子", "遅刻", day),
	}
	cancellations := []attendance.Event{
		event("山田太郎", "早退", day.AddDate(0, 0, 2)),
	}

	byPerson := Aggregate(applications, cancellations, loc)
	require.Len(t, byPerson, 2)

	yamada := byPerson["山田太郎"]
	require.NotNil(t, yamada)
	assert.Len(t, yamada.Applications, 2)
	require.Len(t, yamada.Cancellations, 1)
	assert.Equal(t, Entry{Type: "早退", Date: "2025/1/17"}, yamada.Cancellations[0])

	sato := byPerson["佐藤花子"]
	require.NotNil(t, sato)
	assert.Equal(t, []Entry{{Type: "遅刻", Date: "2025/1/15"}}, sato.Applications)
	assert.Empty(t, sato.Cancellations)
}

func TestAggregateLocalizesDates(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 15:30 UTC on Jan 14 is already Jan 15 in Tokyo.
	utcStart := time.Date(2025, 1, 14, 15, 30, 0, 0, time.UTC)
	byPerson := Aggregate([]attendance.Event{event("山田太郎", "全休", utcStart)}, nil, loc)

	require.Len(t, byPerson["山田太郎"].Applications, 1)
	assert.Equal(t, "2025/1/15", byPerson["山田太郎"].Applications[0].Date)
}

func TestSubject(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Tokyo")
	now := time.Date(2025, 1, 10, 9, 5, 0, 0, loc)
	assert.Equal(t, "【勤怠連絡】CI部_2025/01/10-09時", Subject("【勤怠連絡】", now))
}

func TestBody(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Tokyo")
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, loc)

	t.Run("both sections populated", func(t *testing.T) {
		byPerson := Aggregate(
			[]attendance.Event{event("山田太郎", "全休", day), event("佐藤花子", "遅刻", day)},
			[]attendance.Event{event("鈴木一郎", "休出", day)},
			loc,
		)

		body := Body(byPerson, "cal-id")
		assert.Contains(t, body, "【申請】\n")
		assert.Contains(t, body, "    山田太郎: 全休 (2025/1/15)")
		assert.Contains(t, body, "    佐藤花子: 遅刻 (2025/1/15)")
		assert.Contains(t, body, "【取消】\n    鈴木一郎: 休出 (2025/1/15)")
		assert.Contains(t, body, "https://calendar.google.com/calendar/embed?src=cal-id")
	})

	t.Run("people are ordered deterministically", func(t *testing.T) {
		byPerson := Aggregate(
			[]attendance.Event{event("b", "全休", day), event("a", "全休", day)},
			nil, loc,
		)

		body := Body(byPerson, "cal-id")
		ia := strings.Index(body, "    a: ")
		ib := strings.Index(body, "    b: ")
		require.GreaterOrEqual(t, ia, 0)
		require.GreaterOrEqual(t, ib, 0)
		assert.Less(t, ia, ib)
	})

	t.Run("empty section renders empty", func(t *testing.T) {
		byPerson := Aggregate([]attendance.Event{event("山田太郎", "全休", day)}, nil, loc)
		body := Body(byPerson, "cal-id")
		assert.Contains(t, body, "【取消】\n\n")
	})
}
