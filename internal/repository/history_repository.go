package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"homekeeper/internal/model"
)

// HistoryRepository reads the append-only task history log.
// Writes go through TaskRepository.RecordProgress so they share the task
// update's transaction.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// ListByTask returns the task's history, most recent completion first.
func (r *HistoryRepository) ListByTask(ctx context.Context, taskID uint) ([]model.TaskHistory, error) {
	var entries []model.TaskHistory
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).
		Order("completed_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}
