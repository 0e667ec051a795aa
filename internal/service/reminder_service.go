package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"homekeeper/internal/model"
)

// ReminderService builds human-readable digests of chores that are due.
type ReminderService struct {
	tasks TaskStore
	rooms RoomStore
}

func NewReminderService(tasks TaskStore, rooms RoomStore) *ReminderService {
	return &ReminderService{tasks: tasks, rooms: rooms}
}

// DailySummary renders an HTML digest of the user's chores due by the end of
// the given day, grouped by room. Tasks in archived rooms are left out.
// Returns "" when nothing is due.
func (s *ReminderService) DailySummary(ctx context.Context, userID uint, now time.Time) (string, error) {
	year, month, day := now.Date()
	cutoff := time.Date(year, month, day, 23, 59, 59, 0, now.Location())

	tasks, err := s.tasks.ListDueBefore(ctx, userID, cutoff)
	if err != nil {
		return "", err
	}

	rooms, err := s.rooms.List(ctx, userID, false, model.RoomSortName)
	if err != nil {
		return "", err
	}

	byRoom := make(map[uint][]model.CleaningTask)
	for _, task := range tasks {
		byRoom[task.RoomID] = append(byRoom[task.RoomID], task)
	}

	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	var builder strings.Builder
	total := 0
	for _, room := range rooms {
		due := byRoom[room.ID]
		if len(due) == 0 {
			continue
		}
		total += len(due)

		builder.WriteString(fmt.Sprintf("\n🚪 <b>%s</b>\n", html.EscapeString(strings.TrimSpace(room.Name))))
		for _, task := range due {
			builder.WriteString(formatDueTask(task, startOfDay))
		}
	}

	if total == 0 {
		return "", nil
	}

	header := fmt.Sprintf("🧹 <b>Cleaning digest</b>\n🗓 %s · %d task(s) due\n", now.Format("2006-01-02"), total)
	return strings.TrimSpace(header + builder.String()), nil
}

func formatDueTask(task model.CleaningTask, startOfDay time.Time) string {
	var sb strings.Builder

	icon := "⏳"
	if task.NextScheduledAt != nil && task.NextScheduledAt.Before(startOfDay) {
		icon = "⚠️"
	}
	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(task.Title))))

	if task.NextScheduledAt != nil && task.NextScheduledAt.Before(startOfDay) {
		sb.WriteString(fmt.Sprintf(" — <b>overdue since %s</b>", task.NextScheduledAt.Format("2006-01-02")))
	}
	if task.EstimatedMinutes != nil {
		sb.WriteString(fmt.Sprintf(" · ≈%d min", *task.EstimatedMinutes))
	}
	if task.SkipCount >= 3 {
		sb.WriteString(fmt.Sprintf("\n   🔁 skipped %d times already", task.SkipCount))
	}

	sb.WriteByte('\n')
	return sb.String()
}
