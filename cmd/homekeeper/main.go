package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homekeeper/internal/config"
	"homekeeper/internal/notify"
	"homekeeper/internal/repository"
	"homekeeper/internal/server"
	"homekeeper/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	roomSvc := service.NewRoomService(roomRepo)
	taskSvc := service.NewTaskService(taskRepo, historyRepo)
	userSvc := service.NewUserService(userRepo)
	reminderSvc := service.NewReminderService(taskRepo, roomRepo)

	handler := server.NewHandler(roomSvc, taskSvc, userSvc)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.NewRouter(handler),
	}

	if cfg.RemindersEnabled() {
		notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}

		scheduler := service.NewSchedulerService(time.Local)
		if _, err := scheduler.ScheduleDaily(cfg.ReminderTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := sendReminders(jobCtx, userRepo, reminderSvc, notifier); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[warn] reminders: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule reminders: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Printf("[info] daily reminders scheduled at %s", cfg.ReminderTime)
	}

	go func() {
		log.Printf("[info] listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[info] shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	log.Println("[info] shutdown complete")
}

// sendReminders pushes a digest for every user who has chores due today.
func sendReminders(ctx context.Context, users *repository.UserRepository, reminders *service.ReminderService, notifier *notify.Telegram) error {
	all, err := users.List(ctx, 0, 0)
	if err != nil {
		return err
	}

	var firstErr error
	for _, user := range all {
		summary, err := reminders.DailySummary(ctx, user.ID, time.Now())
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if summary == "" {
			continue
		}
		if err := notifier.Send(summary); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
