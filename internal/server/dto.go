package server

import (
	"time"

	"homekeeper/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type roomResponse struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"userId"`
	Name       string     `json:"name"`
	Icon       string     `json:"icon,omitempty"`
	Color      string     `json:"color,omitempty"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func toRoomResponse(room *model.Room) roomResponse {
	return roomResponse{
		ID:         room.ID,
		UserID:     room.UserID,
		Name:       room.Name,
		Icon:       room.Icon,
		Color:      room.Color,
		ArchivedAt: room.ArchivedAt,
		CreatedAt:  room.CreatedAt,
		UpdatedAt:  room.UpdatedAt,
	}
}

type taskResponse struct {
	ID                 uint       `json:"id"`
	RoomID             uint       `json:"roomId"`
	UserID             uint       `json:"userId"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	CycleType          string     `json:"cycleType"`
	CustomIntervalDays *int       `json:"customIntervalDays,omitempty"`
	Priority           *int       `json:"priority,omitempty"`
	EstimatedMinutes   *int       `json:"estimatedMinutes,omitempty"`
	NextScheduledAt    *time.Time `json:"nextScheduledAt,omitempty"`
	LastCompletedAt    *time.Time `json:"lastCompletedAt,omitempty"`
	SkipCount          int        `json:"skipCount"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func toTaskResponse(task *model.CleaningTask) taskResponse {
	return taskResponse{
		ID:                 task.ID,
		RoomID:             task.RoomID,
		UserID:             task.UserID,
		Title:              task.Title,
		Description:        task.Description,
		CycleType:          string(task.CycleType),
		CustomIntervalDays: task.CustomIntervalDays,
		Priority:           task.Priority,
		EstimatedMinutes:   task.EstimatedMinutes,
		NextScheduledAt:    task.NextScheduledAt,
		LastCompletedAt:    task.LastCompletedAt,
		SkipCount:          task.SkipCount,
		CreatedAt:          task.CreatedAt,
		UpdatedAt:          task.UpdatedAt,
	}
}

type historyResponse struct {
	ID            uint      `json:"id"`
	TaskID        uint      `json:"taskId"`
	UserID        uint      `json:"userId"`
	Status        string    `json:"status"`
	Memo          string    `json:"memo,omitempty"`
	AttachmentURL string    `json:"attachmentUrl,omitempty"`
	CompletedAt   time.Time `json:"completedAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toHistoryResponse(entry *model.TaskHistory) historyResponse {
	return historyResponse{
		ID:            entry.ID,
		TaskID:        entry.TaskID,
		UserID:        entry.UserID,
		Status:        string(entry.Status),
		Memo:          entry.Memo,
		AttachmentURL: entry.AttachmentURL,
		CompletedAt:   entry.CompletedAt,
		CreatedAt:     entry.CreatedAt,
	}
}

type userResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type createRoomRequest struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
}

type updateRoomRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

type createTaskRequest struct {
	RoomID             uint       `json:"roomId"`
	UserID             uint       `json:"userId"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	CycleType          string     `json:"cycleType"`
	CustomIntervalDays *int       `json:"customIntervalDays"`
	Priority           *int       `json:"priority"`
	EstimatedMinutes   *int       `json:"estimatedMinutes"`
	NextScheduledAt    *time.Time `json:"nextScheduledAt"`
}

type updateTaskRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	CycleType          *string    `json:"cycleType"`
	CustomIntervalDays *int       `json:"customIntervalDays"`
	Priority           *int       `json:"priority"`
	EstimatedMinutes   *int       `json:"estimatedMinutes"`
	NextScheduledAt    *time.Time `json:"nextScheduledAt"`
}

type recordProgressRequest struct {
	UserID        uint       `json:"userId"`
	Status        string     `json:"status"`
	Memo          string     `json:"memo"`
	AttachmentURL string     `json:"attachmentUrl"`
	CompletedAt   *time.Time `json:"completedAt"`
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
