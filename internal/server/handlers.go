package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"homekeeper/internal/model"
	"homekeeper/internal/service"
)

// RoomService is the room-facing slice of the domain layer.
type RoomService interface {
	CreateRoom(ctx context.Context, input service.CreateRoomInput) (*model.Room, error)
	UpdateRoom(ctx context.Context, id uint, input service.UpdateRoomInput) (*model.Room, error)
	ArchiveRoom(ctx context.Context, id uint) (*model.Room, error)
	RestoreRoom(ctx context.Context, id uint) (*model.Room, error)
	ListRooms(ctx context.Context, input service.ListRoomsInput) ([]model.Room, error)
}

// TaskService is the task-facing slice of the domain layer.
type TaskService interface {
	CreateTask(ctx context.Context, input service.CreateTaskInput) (*model.CleaningTask, error)
	UpdateTask(ctx context.Context, id uint, input service.UpdateTaskInput) (*model.CleaningTask, error)
	ListTasksForRoom(ctx context.Context, roomID uint) ([]model.CleaningTask, error)
	ListHistory(ctx context.Context, taskID uint) ([]model.TaskHistory, error)
	RecordProgress(ctx context.Context, input service.RecordProgressInput) (*model.CleaningTask, error)
}

// UserService is the user-facing slice of the domain layer.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context, skip, take int) ([]model.User, error)
	CreateUser(ctx context.Context, input service.CreateUserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, input service.UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// Handler serves the JSON API.
type Handler struct {
	rooms RoomService
	tasks TaskService
	users UserService
}

func NewHandler(rooms RoomService, tasks TaskService, users UserService) *Handler {
	return &Handler{rooms: rooms, tasks: tasks, users: users}
}

// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

// GET /rooms?userId=&includeArchived=&sortBy=
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUintQuery(w, r, "userId")
	if !ok {
		return
	}

	input := service.ListRoomsInput{
		UserID:          userID,
		IncludeArchived: r.URL.Query().Get("includeArchived") == "true",
		SortBy:          model.RoomSort(r.URL.Query().Get("sortBy")),
	}

	rooms, err := h.rooms.ListRooms(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomResponse(&rooms[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.rooms.CreateRoom(r.Context(), service.CreateRoomInput{
		UserID: req.UserID,
		Name:   req.Name,
		Icon:   req.Icon,
		Color:  req.Color,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoomResponse(room))
}

// PATCH /rooms/{id}
func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.rooms.UpdateRoom(r.Context(), id, service.UpdateRoomInput{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

// POST /rooms/{id}/archive
func (h *Handler) ArchiveRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	room, err := h.rooms.ArchiveRoom(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

// POST /rooms/{id}/restore
func (h *Handler) RestoreRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	room, err := h.rooms.RestoreRoom(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

// GET /rooms/{id}/tasks
func (h *Handler) ListRoomTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListTasksForRoom(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /tasks
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), service.CreateTaskInput{
		RoomID:             req.RoomID,
		UserID:             req.UserID,
		Title:              req.Title,
		Description:        req.Description,
		CycleType:          model.CycleType(req.CycleType),
		CustomIntervalDays: req.CustomIntervalDays,
		Priority:           req.Priority,
		EstimatedMinutes:   req.EstimatedMinutes,
		NextScheduledAt:    req.NextScheduledAt,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

// PATCH /tasks/{id}
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := service.UpdateTaskInput{
		Title:              req.Title,
		Description:        req.Description,
		CustomIntervalDays: req.CustomIntervalDays,
		Priority:           req.Priority,
		EstimatedMinutes:   req.EstimatedMinutes,
		NextScheduledAt:    req.NextScheduledAt,
	}
	if req.CycleType != nil {
		cycle := model.CycleType(*req.CycleType)
		input.CycleType = &cycle
	}

	task, err := h.tasks.UpdateTask(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// POST /tasks/{id}/progress
func (h *Handler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req recordProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.tasks.RecordProgress(r.Context(), service.RecordProgressInput{
		TaskID:        id,
		UserID:        req.UserID,
		Status:        model.TaskStatus(req.Status),
		Memo:          req.Memo,
		AttachmentURL: req.AttachmentURL,
		CompletedAt:   req.CompletedAt,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// GET /tasks/{id}/history
func (h *Handler) ListTaskHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	entries, err := h.tasks.ListHistory(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]historyResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toHistoryResponse(&entries[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /users?skip=&take=
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	take, _ := strconv.Atoi(r.URL.Query().Get("take"))

	users, err := h.users.ListUsers(r.Context(), skip, take)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.CreateUser(r.Context(), service.CreateUserInput{Name: req.Name, Email: req.Email})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// PATCH /users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id, service.UpdateUserInput{Name: req.Name, Email: req.Email})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// DELETE /users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func parseUintQuery(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := r.URL.Query().Get(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		writeError(w, http.StatusBadRequest, "invalid or missing "+name)
		return 0, false
	}
	return uint(value), true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("[warn] request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[warn] encode response: %v", err)
	}
}
