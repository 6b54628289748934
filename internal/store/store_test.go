package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"attendance-bot-backend/internal/attendance"
	"attendance-bot-backend/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.StateEntry{}))

	return NewGormStore(db)
}

func TestLastRun(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	t.Run("absent before first run", func(t *testing.T) {
		_, ok, err := s.LastRun(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("round-trips and overwrites", func(t *testing.T) {
		first := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
		require.NoError(t, s.SetLastRun(ctx, first))

		got, ok, err := s.LastRun(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, got.Equal(first))

		second := first.Add(8 * time.Hour)
		require.NoError(t, s.SetLastRun(ctx, second))

		got, ok, err = s.LastRun(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, got.Equal(second))
	})
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	t.Run("absent snapshot is an empty map, not an error", func(t *testing.T) {
		snapshot, err := s.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, snapshot)
	})

	t.Run("round-trips events with timestamps", func(t *testing.T) {
		start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		original := map[string]attendance.Event{
			"ev-1": {
				ID:          "ev-1",
				PersonName:  "山田太郎",
				Type:        "全休",
				Reporter:    "山田太郎",
				Start:       start,
				End:         start.AddDate(0, 0, 1),
				AllDay:      true,
				LastUpdated: start.Add(-time.Hour),
				Summary:     "山田太郎 - 全休",
				Description: "備考: 私用のため\n申請者: 山田太郎",
			},
			"ev-2": {ID: "ev-2", PersonName: "佐藤花子", Type: "午前休"},
		}

		require.NoError(t, s.SaveSnapshot(ctx, original))

		loaded, err := s.LoadSnapshot(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, original["ev-1"].Summary, loaded["ev-1"].Summary)
		assert.True(t, loaded["ev-1"].Start.Equal(original["ev-1"].Start))
		assert.True(t, loaded["ev-1"].AllDay)
		assert.Equal(t, "佐藤花子", loaded["ev-2"].PersonName)
	})

	t.Run("save replaces the previous generation", func(t *testing.T) {
		require.NoError(t, s.SaveSnapshot(ctx, map[string]attendance.Event{
			"ev-3": {ID: "ev-3", PersonName: "鈴木一郎", Type: "休出"},
		}))

		loaded, err := s.LoadSnapshot(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "ev-3", loaded["ev-3"].ID)
	})
}
