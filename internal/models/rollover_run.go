package models

import (
	"time"

	"gorm.io/datatypes"
)

// Rollover run statuses.
const (
	RolloverStatusRunning   = "running"
	RolloverStatusCompleted = "completed"
	RolloverStatusFailed    = "failed"
)

// RolloverRun is the audit row written for every weekly pipeline run.
// Counts holds per-strategy layer counts keyed by layer type.
type RolloverRun struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	RunID      string            `gorm:"size:36;uniqueIndex;not null" json:"run_id"`
	BaseDate   time.Time         `gorm:"index;not null" json:"base_date"`
	Status     string            `gorm:"size:32;not null" json:"status"`
	Counts     datatypes.JSONMap `gorm:"type:json" json:"counts"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
}
