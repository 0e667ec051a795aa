package model

import "time"

// CycleType is the recurrence pattern of a cleaning task.
type CycleType string

const (
	CycleDaily   CycleType = "DAILY"
	CycleWeekly  CycleType = "WEEKLY"
	CycleMonthly CycleType = "MONTHLY"
	CycleCustom  CycleType = "CUSTOM"
)

// Valid reports whether c is one of the known cycle types.
func (c CycleType) Valid() bool {
	switch c {
	case CycleDaily, CycleWeekly, CycleMonthly, CycleCustom:
		return true
	}
	return false
}

// CleaningTask is a recurring chore bound to a room.
// CustomIntervalDays is non-nil exactly when CycleType is CUSTOM.
type CleaningTask struct {
	ID                 uint `gorm:"primaryKey"`
	RoomID             uint `gorm:"index"`
	UserID             uint `gorm:"index"`
	Title              string
	Description        string
	CycleType          CycleType
	CustomIntervalDays *int
	Priority           *int
	EstimatedMinutes   *int
	NextScheduledAt    *time.Time
	LastCompletedAt    *time.Time
	SkipCount          int `gorm:"default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
