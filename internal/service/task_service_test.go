package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"homekeeper/internal/model"
)

// --- fakes ---

type fakeTaskStore struct {
	createFn         func(*model.CleaningTask) error
	findFn           func(uint) (*model.CleaningTask, error)
	updateFn         func(uint, map[string]interface{}) (*model.CleaningTask, error)
	listByRoomFn     func(uint) ([]model.CleaningTask, error)
	listDueBeforeFn  func(uint, time.Time) ([]model.CleaningTask, error)
	recordProgressFn func(*model.CleaningTask, *model.TaskHistory) error
}

func (s *fakeTaskStore) Create(_ context.Context, task *model.CleaningTask) error {
	return s.createFn(task)
}
func (s *fakeTaskStore) FindByID(_ context.Context, id uint) (*model.CleaningTask, error) {
	return s.findFn(id)
}
func (s *fakeTaskStore) Update(_ context.Context, id uint, changes map[string]interface{}) (*model.CleaningTask, error) {
	return s.updateFn(id, changes)
}
func (s *fakeTaskStore) ListByRoom(_ context.Context, roomID uint) ([]model.CleaningTask, error) {
	return s.listByRoomFn(roomID)
}
func (s *fakeTaskStore) ListDueBefore(_ context.Context, userID uint, cutoff time.Time) ([]model.CleaningTask, error) {
	return s.listDueBeforeFn(userID, cutoff)
}
func (s *fakeTaskStore) RecordProgress(_ context.Context, task *model.CleaningTask, entry *model.TaskHistory) error {
	return s.recordProgressFn(task, entry)
}

type fakeHistoryStore struct {
	listByTaskFn func(uint) ([]model.TaskHistory, error)
}

func (s *fakeHistoryStore) ListByTask(_ context.Context, taskID uint) ([]model.TaskHistory, error) {
	return s.listByTaskFn(taskID)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// --- tests ---

func TestCreateTaskComputesSchedule(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var created *model.CleaningTask
	store := &fakeTaskStore{createFn: func(task *model.CleaningTask) error {
		created = task
		return nil
	}}

	svc := NewTaskService(store, &fakeHistoryStore{})
	svc.now = fixedClock(now)

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		RoomID:    1,
		UserID:    1,
		Title:     "Sweep",
		CycleType: model.CycleDaily,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created == nil {
		t.Fatal("task was not persisted")
	}
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if task.NextScheduledAt == nil || !task.NextScheduledAt.Equal(want) {
		t.Fatalf("NextScheduledAt=%v, want %v", task.NextScheduledAt, want)
	}
	if task.CustomIntervalDays != nil {
		t.Fatalf("CustomIntervalDays=%v, want nil", *task.CustomIntervalDays)
	}
}

func TestCreateTaskKeepsCallerSchedule(t *testing.T) {
	supplied := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	store := &fakeTaskStore{createFn: func(*model.CleaningTask) error { return nil }}
	svc := NewTaskService(store, &fakeHistoryStore{})

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		RoomID:          1,
		UserID:          1,
		Title:           "Vacuum",
		CycleType:       model.CycleWeekly,
		NextScheduledAt: &supplied,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.NextScheduledAt == nil || !task.NextScheduledAt.Equal(supplied) {
		t.Fatalf("NextScheduledAt=%v, want %v", task.NextScheduledAt, supplied)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateTaskInput
		wantErr error
	}{
		{
			"missing title",
			CreateTaskInput{CycleType: model.CycleDaily},
			ErrTitleRequired,
		},
		{
			"blank title",
			CreateTaskInput{Title: "   ", CycleType: model.CycleDaily},
			ErrTitleRequired,
		},
		{
			"title too long",
			CreateTaskInput{Title: strings.Repeat("x", 101), CycleType: model.CycleDaily},
			ErrTitleTooLong,
		},
		{
			"description too long",
			CreateTaskInput{Title: "ok", Description: strings.Repeat("y", 1001), CycleType: model.CycleDaily},
			ErrDescriptionTooLong,
		},
		{
			"custom without interval",
			CreateTaskInput{Title: "ok", CycleType: model.CycleCustom},
			ErrIntervalRequired,
		},
		{
			"custom interval too small",
			CreateTaskInput{Title: "ok", CycleType: model.CycleCustom, CustomIntervalDays: intp(0)},
			ErrIntervalOutOfRange,
		},
		{
			"custom interval too large",
			CreateTaskInput{Title: "ok", CycleType: model.CycleCustom, CustomIntervalDays: intp(366)},
			ErrIntervalOutOfRange,
		},
		{
			"interval with preset cycle",
			CreateTaskInput{Title: "ok", CycleType: model.CycleWeekly, CustomIntervalDays: intp(3)},
			ErrIntervalNotAllowed,
		},
		{
			"unknown cycle",
			CreateTaskInput{Title: "ok", CycleType: model.CycleType("YEARLY")},
			ErrUnknownCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeTaskStore{createFn: func(*model.CleaningTask) error {
				t.Fatal("Create should not be called on invalid input")
				return nil
			}}
			svc := NewTaskService(store, &fakeHistoryStore{})

			_, err := svc.CreateTask(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err=%v does not wrap ErrValidation", err)
			}
		})
	}
}

func TestUpdateTaskRecomputesFromSuppliedBase(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cycle := model.CycleWeekly

	var gotChanges map[string]interface{}
	store := &fakeTaskStore{updateFn: func(_ uint, changes map[string]interface{}) (*model.CleaningTask, error) {
		gotChanges = changes
		return &model.CleaningTask{ID: 7}, nil
	}}
	svc := NewTaskService(store, &fakeHistoryStore{})

	_, err := svc.UpdateTask(context.Background(), 7, UpdateTaskInput{
		CycleType:       &cycle,
		NextScheduledAt: &base,
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	next, ok := gotChanges["next_scheduled_at"].(time.Time)
	if !ok {
		t.Fatalf("next_scheduled_at missing from changes: %v", gotChanges)
	}
	want := base.AddDate(0, 0, 7)
	if !next.Equal(want) {
		t.Fatalf("next_scheduled_at=%v, want %v", next, want)
	}
}

func TestUpdateTaskPassesScheduleThroughWithoutCycle(t *testing.T) {
	base := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	var gotChanges map[string]interface{}
	store := &fakeTaskStore{updateFn: func(_ uint, changes map[string]interface{}) (*model.CleaningTask, error) {
		gotChanges = changes
		return &model.CleaningTask{ID: 7}, nil
	}}
	svc := NewTaskService(store, &fakeHistoryStore{})

	if _, err := svc.UpdateTask(context.Background(), 7, UpdateTaskInput{NextScheduledAt: &base}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	next, ok := gotChanges["next_scheduled_at"].(time.Time)
	if !ok || !next.Equal(base) {
		t.Fatalf("next_scheduled_at=%v, want unchanged %v", gotChanges["next_scheduled_at"], base)
	}
}

func TestUpdateTaskLeavingCustomClearsInterval(t *testing.T) {
	cycle := model.CycleDaily

	var gotChanges map[string]interface{}
	store := &fakeTaskStore{updateFn: func(_ uint, changes map[string]interface{}) (*model.CleaningTask, error) {
		gotChanges = changes
		return &model.CleaningTask{ID: 3}, nil
	}}
	svc := NewTaskService(store, &fakeHistoryStore{})

	if _, err := svc.UpdateTask(context.Background(), 3, UpdateTaskInput{CycleType: &cycle}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	value, present := gotChanges["custom_interval_days"]
	if !present || value != nil {
		t.Fatalf("custom_interval_days=%v present=%v, want explicit nil", value, present)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	store := &fakeTaskStore{updateFn: func(uint, map[string]interface{}) (*model.CleaningTask, error) {
		return nil, nil
	}}
	svc := NewTaskService(store, &fakeHistoryStore{})

	title := "new"
	_, err := svc.UpdateTask(context.Background(), 99, UpdateTaskInput{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestRecordProgressDone(t *testing.T) {
	next := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	completed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	task := &model.CleaningTask{ID: 5, CycleType: model.CycleWeekly, NextScheduledAt: &next}

	var gotEntry *model.TaskHistory
	store := &fakeTaskStore{
		findFn: func(uint) (*model.CleaningTask, error) { return task, nil },
		recordProgressFn: func(_ *model.CleaningTask, entry *model.TaskHistory) error {
			gotEntry = entry
			return nil
		},
	}
	svc := NewTaskService(store, &fakeHistoryStore{})

	updated, err := svc.RecordProgress(context.Background(), RecordProgressInput{
		TaskID:      5,
		UserID:      2,
		Status:      model.StatusDone,
		CompletedAt: &completed,
	})
	if err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	// Weekly from the completion time, not from the old due date.
	want := completed.AddDate(0, 0, 7)
	if updated.NextScheduledAt == nil || !updated.NextScheduledAt.Equal(want) {
		t.Fatalf("NextScheduledAt=%v, want %v", updated.NextScheduledAt, want)
	}
	if updated.LastCompletedAt == nil || !updated.LastCompletedAt.Equal(completed) {
		t.Fatalf("LastCompletedAt=%v, want %v", updated.LastCompletedAt, completed)
	}
	if updated.SkipCount != 0 {
		t.Fatalf("SkipCount=%d, want 0", updated.SkipCount)
	}
	if gotEntry == nil || gotEntry.Status != model.StatusDone || !gotEntry.CompletedAt.Equal(completed) {
		t.Fatalf("history entry %+v, want DONE at %v", gotEntry, completed)
	}
}

func TestRecordProgressSkippedAnchorsOnMissedDate(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	missed := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	task := &model.CleaningTask{ID: 5, CycleType: model.CycleDaily, NextScheduledAt: &missed, SkipCount: 1}

	store := &fakeTaskStore{
		findFn:           func(uint) (*model.CleaningTask, error) { return task, nil },
		recordProgressFn: func(*model.CleaningTask, *model.TaskHistory) error { return nil },
	}
	svc := NewTaskService(store, &fakeHistoryStore{})
	svc.now = fixedClock(now)

	updated, err := svc.RecordProgress(context.Background(), RecordProgressInput{
		TaskID: 5,
		UserID: 2,
		Status: model.StatusSkipped,
	})
	if err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	// One cycle past the missed due date, not "now" plus one.
	want := missed.AddDate(0, 0, 1)
	if updated.NextScheduledAt == nil || !updated.NextScheduledAt.Equal(want) {
		t.Fatalf("NextScheduledAt=%v, want %v", updated.NextScheduledAt, want)
	}
	if updated.SkipCount != 2 {
		t.Fatalf("SkipCount=%d, want 2", updated.SkipCount)
	}
	if updated.LastCompletedAt != nil {
		t.Fatalf("LastCompletedAt=%v, want nil", updated.LastCompletedAt)
	}
}

func TestRecordProgressSkippedWithoutScheduleFallsBack(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	task := &model.CleaningTask{ID: 5, CycleType: model.CycleDaily}

	store := &fakeTaskStore{
		findFn:           func(uint) (*model.CleaningTask, error) { return task, nil },
		recordProgressFn: func(*model.CleaningTask, *model.TaskHistory) error { return nil },
	}
	svc := NewTaskService(store, &fakeHistoryStore{})
	svc.now = fixedClock(now)

	updated, err := svc.RecordProgress(context.Background(), RecordProgressInput{
		TaskID: 5,
		UserID: 2,
		Status: model.StatusSkipped,
	})
	if err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	want := now.AddDate(0, 0, 1)
	if updated.NextScheduledAt == nil || !updated.NextScheduledAt.Equal(want) {
		t.Fatalf("NextScheduledAt=%v, want %v", updated.NextScheduledAt, want)
	}
}

func TestRecordProgressDelayedUpdatesLastCompleted(t *testing.T) {
	completed := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	task := &model.CleaningTask{ID: 5, CycleType: model.CycleDaily, SkipCount: 4}

	store := &fakeTaskStore{
		findFn:           func(uint) (*model.CleaningTask, error) { return task, nil },
		recordProgressFn: func(*model.CleaningTask, *model.TaskHistory) error { return nil },
	}
	svc := NewTaskService(store, &fakeHistoryStore{})

	updated, err := svc.RecordProgress(context.Background(), RecordProgressInput{
		TaskID:      5,
		UserID:      2,
		Status:      model.StatusDelayed,
		CompletedAt: &completed,
	})
	if err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	if updated.LastCompletedAt == nil || !updated.LastCompletedAt.Equal(completed) {
		t.Fatalf("LastCompletedAt=%v, want %v", updated.LastCompletedAt, completed)
	}
	if updated.SkipCount != 4 {
		t.Fatalf("SkipCount=%d, want unchanged 4", updated.SkipCount)
	}
}

func TestRecordProgressNotFound(t *testing.T) {
	store := &fakeTaskStore{
		findFn: func(uint) (*model.CleaningTask, error) { return nil, nil },
		recordProgressFn: func(*model.CleaningTask, *model.TaskHistory) error {
			return errors.New("RecordProgress should not be called")
		},
	}
	svc := NewTaskService(store, &fakeHistoryStore{})

	_, err := svc.RecordProgress(context.Background(), RecordProgressInput{TaskID: 404, Status: model.StatusDone})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestRecordProgressUnknownStatus(t *testing.T) {
	store := &fakeTaskStore{findFn: func(uint) (*model.CleaningTask, error) {
		return &model.CleaningTask{}, nil
	}}
	svc := NewTaskService(store, &fakeHistoryStore{})

	_, err := svc.RecordProgress(context.Background(), RecordProgressInput{TaskID: 1, Status: model.TaskStatus("PAUSED")})
	if !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("err=%v, want ErrUnknownStatus", err)
	}
}

func TestListTasksForRoomPassesThrough(t *testing.T) {
	store := &fakeTaskStore{listByRoomFn: func(roomID uint) ([]model.CleaningTask, error) {
		if roomID != 12 {
			t.Fatalf("roomID=%d, want 12", roomID)
		}
		return []model.CleaningTask{{ID: 1}, {ID: 2}}, nil
	}}
	svc := NewTaskService(store, &fakeHistoryStore{})

	tasks, err := svc.ListTasksForRoom(context.Background(), 12)
	if err != nil {
		t.Fatalf("ListTasksForRoom: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
}
