package server

import "net/http"

// NewRouter wires the JSON API routes.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("GET /rooms", h.ListRooms)
	mux.HandleFunc("POST /rooms", h.CreateRoom)
	mux.HandleFunc("PATCH /rooms/{id}", h.UpdateRoom)
	mux.HandleFunc("POST /rooms/{id}/archive", h.ArchiveRoom)
	mux.HandleFunc("POST /rooms/{id}/restore", h.RestoreRoom)
	mux.HandleFunc("GET /rooms/{id}/tasks", h.ListRoomTasks)

	mux.HandleFunc("POST /tasks", h.CreateTask)
	mux.HandleFunc("PATCH /tasks/{id}", h.UpdateTask)
	mux.HandleFunc("POST /tasks/{id}/progress", h.RecordProgress)
	mux.HandleFunc("GET /tasks/{id}/history", h.ListTaskHistory)

	mux.HandleFunc("GET /users", h.ListUsers)
	mux.HandleFunc("POST /users", h.CreateUser)
	mux.HandleFunc("GET /users/{id}", h.GetUser)
	mux.HandleFunc("PATCH /users/{id}", h.UpdateUser)
	mux.HandleFunc("DELETE /users/{id}", h.DeleteUser)

	return mux
}
