package model

import "time"

// User owns rooms and cleaning tasks.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string
	Email     string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
