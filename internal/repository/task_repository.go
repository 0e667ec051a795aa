package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"homekeeper/internal/model"
)

// TaskRepository handles CRUD for cleaning tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.CleaningTask) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// FindByID returns the task or nil when no such row exists.
func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.CleaningTask, error) {
	var task model.CleaningTask
	err := r.db.WithContext(ctx).First(&task, id).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find task: %w", err)
	}
}

// Update applies a partial column set to the task and returns the fresh row,
// or nil when the target does not exist.
func (r *TaskRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) (*model.CleaningTask, error) {
	var task model.CleaningTask
	db := r.db.WithContext(ctx)
	err := db.First(&task, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("find task: %w", err)
	}
	if len(changes) == 0 {
		return &task, nil
	}
	if err := db.Model(&task).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &task, nil
}

// ListByRoom returns the room's tasks, soonest due first.
func (r *TaskRepository) ListByRoom(ctx context.Context, roomID uint) ([]model.CleaningTask, error) {
	var tasks []model.CleaningTask
	if err := r.db.WithContext(ctx).Where("room_id = ?", roomID).
		Order("next_scheduled_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListDueBefore returns the user's tasks whose next due date falls on or
// before cutoff, soonest first.
func (r *TaskRepository) ListDueBefore(ctx context.Context, userID uint, cutoff time.Time) ([]model.CleaningTask, error) {
	var tasks []model.CleaningTask
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND next_scheduled_at IS NOT NULL AND next_scheduled_at <= ?", userID, cutoff).
		Order("next_scheduled_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	return tasks, nil
}

// RecordProgress saves the rescheduled task and appends its history entry in
// one transaction, so a failed insert never leaves a half-applied update.
func (r *TaskRepository) RecordProgress(ctx context.Context, task *model.CleaningTask, entry *model.TaskHistory) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return fmt.Errorf("save task: %w", err)
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record progress: %w", err)
	}
	return nil
}
