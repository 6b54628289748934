package model

import "time"

// StateEntry is one persisted key-value record. The diff job keeps its
// last-run timestamp and its serialized event snapshot here so they survive
// process restarts.
type StateEntry struct {
	Key       string    `gorm:"primaryKey;size:128"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
