package model

import "time"

// TaskStatus is the disposition recorded for one cycle of a task.
type TaskStatus string

const (
	StatusDone    TaskStatus = "DONE"
	StatusSkipped TaskStatus = "SKIPPED"
	StatusDelayed TaskStatus = "DELAYED"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusDone, StatusSkipped, StatusDelayed:
		return true
	}
	return false
}

// TaskHistory is one append-only progress record for a cleaning task.
// Rows are never updated or deleted after creation.
type TaskHistory struct {
	ID            uint `gorm:"primaryKey"`
	TaskID        uint `gorm:"index"`
	UserID        uint `gorm:"index"`
	Status        TaskStatus
	Memo          string
	AttachmentURL string
	CompletedAt   time.Time
	CreatedAt     time.Time
}
