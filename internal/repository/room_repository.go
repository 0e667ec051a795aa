package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"homekeeper/internal/model"
)

// RoomRepository manages rooms.
type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *model.Room) error {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// Update applies a partial column set to the room and returns the fresh row,
// or nil when the target does not exist.
func (r *RoomRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) (*model.Room, error) {
	var room model.Room
	db := r.db.WithContext(ctx)
	err := db.First(&room, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("find room: %w", err)
	}
	if len(changes) == 0 {
		return &room, nil
	}
	if err := db.Model(&room).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	return &room, nil
}

// List returns the user's rooms, hiding archived ones unless asked for.
func (r *RoomRepository) List(ctx context.Context, userID uint, includeArchived bool, sort model.RoomSort) ([]model.Room, error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeArchived {
		db = db.Where("archived_at IS NULL")
	}
	if sort == model.RoomSortLastActivity {
		db = db.Order("updated_at DESC")
	} else {
		db = db.Order("name ASC")
	}

	var rooms []model.Room
	if err := db.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}
