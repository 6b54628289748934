package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendance-bot-backend/internal/attendance"
	"attendance-bot-backend/internal/model"
)

// Keys of the persisted state entries.
const (
	keyLastRun  = "last_execution_time"
	keySnapshot = "previous_event_state"
)

// snapshotVersion is bumped whenever the serialized snapshot schema changes.
const snapshotVersion = 1

// Store persists the diff job's cross-run state.
type Store interface {
	// LastRun returns the previous run's timestamp; ok is false when no run
	// has been recorded yet.
	LastRun(ctx context.Context) (t time.Time, ok bool, err error)
	SetLastRun(ctx context.Context, t time.Time) error
	// LoadSnapshot returns the previously persisted event snapshot. Absence
	// of a snapshot is not an error; it yields an empty map.
	LoadSnapshot(ctx context.Context) (map[string]attendance.Event, error)
	SaveSnapshot(ctx context.Context, snapshot map[string]attendance.Event) error
}

// gormStore implements Store on the state_entries table.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// snapshotDoc is the on-disk snapshot schema. Event timestamps serialize as
// RFC3339 through the attendance.Event JSON tags.
type snapshotDoc struct {
	Version int                         `json:"version"`
	Events  map[string]attendance.Event `json:"events"`
}

func (s *gormStore) LastRun(ctx context.Context) (time.Time, bool, error) {
	raw, ok, err := s.get(ctx, keyLastRun)
	if err != nil || !ok {
		return time.Time{}, false, err
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse stored last-run time %q: %w", raw, err)
	}
	return t, true, nil
}

func (s *gormStore) SetLastRun(ctx context.Context, t time.Time) error {
	return s.set(ctx, keyLastRun, t.Format(time.RFC3339))
}

func (s *gormStore) LoadSnapshot(ctx context.Context) (map[string]attendance.Event, error) {
	raw, ok, err := s.get(ctx, keySnapshot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]attendance.Event{}, nil
	}

	var doc snapshotDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode stored snapshot: %w", err)
	}
	if doc.Events == nil {
		doc.Events = map[string]attendance.Event{}
	}
	return doc.Events, nil
}

func (s *gormStore) SaveSnapshot(ctx context.Context, snapshot map[string]attendance.Event) error {
	doc := snapshotDoc{Version: snapshotVersion, Events: snapshot}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.set(ctx, keySnapshot, string(raw))
}

func (s *gormStore) get(ctx context.Context, key string) (string, bool, error) {
	var entry model.StateEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read state entry %q: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *gormStore) set(ctx context.Context, key, value string) error {
	entry := model.StateEntry{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write state entry %q: %w", key, err)
	}
	return nil
}
