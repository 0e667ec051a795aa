package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"homekeeper/internal/model"
)

// TaskStore is the storage collaborator for cleaning tasks.
// FindByID and Update report a missing row as a nil task, not an error.
type TaskStore interface {
	Create(ctx context.Context, task *model.CleaningTask) error
	FindByID(ctx context.Context, id uint) (*model.CleaningTask, error)
	Update(ctx context.Context, id uint, changes map[string]interface{}) (*model.CleaningTask, error)
	ListByRoom(ctx context.Context, roomID uint) ([]model.CleaningTask, error)
	ListDueBefore(ctx context.Context, userID uint, cutoff time.Time) ([]model.CleaningTask, error)
	RecordProgress(ctx context.Context, task *model.CleaningTask, entry *model.TaskHistory) error
}

// HistoryStore reads the append-only progress log.
type HistoryStore interface {
	ListByTask(ctx context.Context, taskID uint) ([]model.TaskHistory, error)
}

// CreateTaskInput carries the fields for a new cleaning task.
type CreateTaskInput struct {
	RoomID             uint
	UserID             uint
	Title              string
	Description        string
	CycleType          model.CycleType
	CustomIntervalDays *int
	Priority           *int
	EstimatedMinutes   *int
	NextScheduledAt    *time.Time
}

// UpdateTaskInput carries a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title              *string
	Description        *string
	CycleType          *model.CycleType
	CustomIntervalDays *int
	Priority           *int
	EstimatedMinutes   *int
	NextScheduledAt    *time.Time
}

// RecordProgressInput logs one disposition (done/skipped/delayed) for a task.
type RecordProgressInput struct {
	TaskID        uint
	UserID        uint
	Status        model.TaskStatus
	Memo          string
	AttachmentURL string
	CompletedAt   *time.Time
}

// TaskService wraps cleaning-task business logic.
type TaskService struct {
	tasks   TaskStore
	history HistoryStore
	now     func() time.Time
}

func NewTaskService(tasks TaskStore, history HistoryStore) *TaskService {
	return &TaskService{tasks: tasks, history: history, now: time.Now}
}

// CreateTask validates the payload, computes the first due date unless the
// caller supplied one, and persists the task.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*model.CleaningTask, error) {
	if err := validateTaskPayload(input.CycleType, input.Title, input.Description, input.CustomIntervalDays); err != nil {
		return nil, err
	}

	next := input.NextScheduledAt
	if next == nil {
		computed, err := NextOccurrence(s.now(), input.CycleType, input.CustomIntervalDays)
		if err != nil {
			return nil, err
		}
		next = &computed
	}

	var interval *int
	if input.CycleType == model.CycleCustom {
		interval = input.CustomIntervalDays
	}

	task := model.CleaningTask{
		RoomID:             input.RoomID,
		UserID:             input.UserID,
		Title:              input.Title,
		Description:        input.Description,
		CycleType:          input.CycleType,
		CustomIntervalDays: interval,
		Priority:           input.Priority,
		EstimatedMinutes:   input.EstimatedMinutes,
		NextScheduledAt:    next,
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update. Validation covers only the supplied
// fields; changing the cycle away from CUSTOM clears the custom interval, and
// a supplied schedule base together with a cycle recomputes the due date.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, input UpdateTaskInput) (*model.CleaningTask, error) {
	changes := map[string]interface{}{}

	if input.Title != nil {
		if utf8.RuneCountInString(*input.Title) > titleMaxLength {
			return nil, ErrTitleTooLong
		}
		changes["title"] = *input.Title
	}
	if input.Description != nil {
		if utf8.RuneCountInString(*input.Description) > descriptionMaxLength {
			return nil, ErrDescriptionTooLong
		}
		changes["description"] = *input.Description
	}

	switch {
	case input.CycleType != nil:
		cycle := *input.CycleType
		if !cycle.Valid() {
			return nil, ErrUnknownCycle
		}
		if cycle == model.CycleCustom {
			if input.CustomIntervalDays == nil {
				return nil, ErrIntervalRequired
			}
			if *input.CustomIntervalDays < minCustomInterval || *input.CustomIntervalDays > maxCustomInterval {
				return nil, ErrIntervalOutOfRange
			}
			changes["custom_interval_days"] = *input.CustomIntervalDays
		} else {
			if input.CustomIntervalDays != nil {
				return nil, ErrIntervalNotAllowed
			}
			changes["custom_interval_days"] = nil
		}
		changes["cycle_type"] = cycle
	case input.CustomIntervalDays != nil:
		// Interval without a cycle change: range check only; whether the
		// stored cycle is CUSTOM is not re-read here.
		if *input.CustomIntervalDays < minCustomInterval || *input.CustomIntervalDays > maxCustomInterval {
			return nil, ErrIntervalOutOfRange
		}
		changes["custom_interval_days"] = *input.CustomIntervalDays
	}

	if input.Priority != nil {
		changes["priority"] = *input.Priority
	}
	if input.EstimatedMinutes != nil {
		changes["estimated_minutes"] = *input.EstimatedMinutes
	}

	if input.NextScheduledAt != nil {
		next := *input.NextScheduledAt
		if input.CycleType != nil {
			computed, err := NextOccurrence(next, *input.CycleType, input.CustomIntervalDays)
			if err != nil {
				return nil, err
			}
			next = computed
		}
		changes["next_scheduled_at"] = next
	}

	task, err := s.tasks.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return task, nil
}

// ListTasksForRoom returns the room's tasks, soonest due first.
func (s *TaskService) ListTasksForRoom(ctx context.Context, roomID uint) ([]model.CleaningTask, error) {
	return s.tasks.ListByRoom(ctx, roomID)
}

// ListHistory returns a task's progress log, most recent completion first.
func (s *TaskService) ListHistory(ctx context.Context, taskID uint) ([]model.TaskHistory, error) {
	return s.history.ListByTask(ctx, taskID)
}

// RecordProgress logs one disposition for the task, reschedules it, and
// appends a history record. The task update and the history insert are
// applied atomically by the store.
//
// SKIPPED anchors the reschedule on the missed due date rather than the
// completion time, so skipping a daily task twice pushes the due date two
// days past where it was instead of snapping to "today plus one".
func (s *TaskService) RecordProgress(ctx context.Context, input RecordProgressInput) (*model.CleaningTask, error) {
	if !input.Status.Valid() {
		return nil, ErrUnknownStatus
	}

	task, err := s.tasks.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task %d: %w", input.TaskID, ErrNotFound)
	}

	completedAt := s.now()
	if input.CompletedAt != nil {
		completedAt = *input.CompletedAt
	}

	anchor := completedAt
	if input.Status == model.StatusSkipped && task.NextScheduledAt != nil {
		anchor = *task.NextScheduledAt
	}

	next, err := NextOccurrence(anchor, task.CycleType, task.CustomIntervalDays)
	if err != nil {
		return nil, err
	}

	task.NextScheduledAt = &next
	if input.Status == model.StatusSkipped {
		task.SkipCount++
	} else {
		done := completedAt
		task.LastCompletedAt = &done
	}

	entry := model.TaskHistory{
		TaskID:        task.ID,
		UserID:        input.UserID,
		Status:        input.Status,
		Memo:          input.Memo,
		AttachmentURL: input.AttachmentURL,
		CompletedAt:   completedAt,
	}

	if err := s.tasks.RecordProgress(ctx, task, &entry); err != nil {
		return nil, err
	}
	return task, nil
}

// validateTaskPayload checks a full create payload.
func validateTaskPayload(cycle model.CycleType, title, description string, interval *int) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > titleMaxLength {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(description) > descriptionMaxLength {
		return ErrDescriptionTooLong
	}
	if !cycle.Valid() {
		return ErrUnknownCycle
	}
	if cycle == model.CycleCustom {
		if interval == nil {
			return ErrIntervalRequired
		}
		if *interval < minCustomInterval || *interval > maxCustomInterval {
			return ErrIntervalOutOfRange
		}
	} else if interval != nil {
		return ErrIntervalNotAllowed
	}
	return nil
}
