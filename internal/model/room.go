package model

import "time"

// RoomSort selects the ordering of a room listing.
type RoomSort string

const (
	RoomSortName         RoomSort = "NAME"
	RoomSortLastActivity RoomSort = "LAST_ACTIVITY"
)

// Room groups cleaning tasks by physical place (kitchen, bathroom, etc.).
// A nil ArchivedAt means the room is active; archiving only toggles that field.
type Room struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"index"`
	Name       string
	Icon       string
	Color      string
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Tasks      []CleaningTask `gorm:"foreignKey:RoomID"`
}

// Archived reports whether the room is currently archived.
func (r Room) Archived() bool { return r.ArchivedAt != nil }
