package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"homekeeper/internal/model"
)

// RoomStore is the storage collaborator for rooms.
// Update reports a missing row as a nil room, not an error.
type RoomStore interface {
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, id uint, changes map[string]interface{}) (*model.Room, error)
	List(ctx context.Context, userID uint, includeArchived bool, sort model.RoomSort) ([]model.Room, error)
}

// CreateRoomInput carries the fields for a new room.
type CreateRoomInput struct {
	UserID uint
	Name   string
	Icon   string
	Color  string
}

// UpdateRoomInput carries a partial update; nil fields are left untouched.
type UpdateRoomInput struct {
	Name  *string
	Icon  *string
	Color *string
}

// ListRoomsInput selects and orders a user's rooms.
type ListRoomsInput struct {
	UserID          uint
	IncludeArchived bool
	SortBy          model.RoomSort
}

// RoomService wraps room CRUD and the archive/restore toggle.
type RoomService struct {
	rooms RoomStore
	now   func() time.Time
}

func NewRoomService(rooms RoomStore) *RoomService {
	return &RoomService{rooms: rooms, now: time.Now}
}

func (s *RoomService) CreateRoom(ctx context.Context, input CreateRoomInput) (*model.Room, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrRoomNameRequired
	}

	room := model.Room{
		UserID: input.UserID,
		Name:   input.Name,
		Icon:   input.Icon,
		Color:  input.Color,
	}
	if err := s.rooms.Create(ctx, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) UpdateRoom(ctx context.Context, id uint, input UpdateRoomInput) (*model.Room, error) {
	changes := map[string]interface{}{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrRoomNameRequired
		}
		changes["name"] = *input.Name
	}
	if input.Icon != nil {
		changes["icon"] = *input.Icon
	}
	if input.Color != nil {
		changes["color"] = *input.Color
	}

	return s.updateOrNotFound(ctx, id, changes)
}

// ArchiveRoom hides the room from default listings; tasks are untouched.
func (s *RoomService) ArchiveRoom(ctx context.Context, id uint) (*model.Room, error) {
	return s.updateOrNotFound(ctx, id, map[string]interface{}{"archived_at": s.now()})
}

// RestoreRoom brings an archived room back.
func (s *RoomService) RestoreRoom(ctx context.Context, id uint) (*model.Room, error) {
	return s.updateOrNotFound(ctx, id, map[string]interface{}{"archived_at": nil})
}

// ListRooms returns the user's rooms, by name unless last-activity ordering
// is requested. Archived rooms are hidden unless asked for.
func (s *RoomService) ListRooms(ctx context.Context, input ListRoomsInput) ([]model.Room, error) {
	sort := input.SortBy
	if sort == "" {
		sort = model.RoomSortName
	}
	return s.rooms.List(ctx, input.UserID, input.IncludeArchived, sort)
}

func (s *RoomService) updateOrNotFound(ctx context.Context, id uint, changes map[string]interface{}) (*model.Room, error) {
	room, err := s.rooms.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("room %d: %w", id, ErrNotFound)
	}
	return room, nil
}
