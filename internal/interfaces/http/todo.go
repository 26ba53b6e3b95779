package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"snaplist/internal/domain/todo"
)

type TodoHandler struct {
	todos *todo.Service
}

func NewTodoHandler(todos *todo.Service) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// Request/Response DTOs

type CreateTodoRequest struct {
	Title     string `json:"title"`
	ImageURL  string `json:"imageUrl,omitempty"`
	ImageName string `json:"imageName,omitempty"`
}

type UpdateTodoRequest struct {
	Completed bool `json:"completed"`
}

type TodoResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	ImageURL  string `json:"imageUrl,omitempty"`
	ImageName string `json:"imageName,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func toTodoResponse(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		ImageURL:  t.ImageURL,
		ImageName: t.ImageName,
		CreatedAt: t.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// HandleTodos routes collection requests to the appropriate handler based on method
func (h *TodoHandler) HandleTodos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListTodos(w, r)
	case http.MethodPost:
		h.handleCreateTodo(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleTodoByID routes requests for a specific todo
func (h *TodoHandler) HandleTodoByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		h.handleUpdateTodo(w, r)
	case http.MethodDelete:
		h.handleDeleteTodo(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleListTodos returns all todos, newest first
func (h *TodoHandler) handleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.List(r.Context())
	if err != nil {
		log.Printf("Error listing todos: %v", err)
		http.Error(w, "Failed to list todos", http.StatusInternalServerError)
		return
	}

	response := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		response = append(response, toTodoResponse(t))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleCreateTodo inserts a new todo row
func (h *TodoHandler) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create todo request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := todo.CreateParams{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		ImageName: req.ImageName,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.todos.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating todo: %v", err)
		http.Error(w, "Failed to create todo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toTodoResponse(t))
}

// handleUpdateTodo sets the completed flag for a todo
func (h *TodoHandler) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	todoID := r.PathValue("id")
	if todoID == "" {
		http.Error(w, "Todo ID is required", http.StatusBadRequest)
		return
	}

	var req UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update todo request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.todos.SetCompleted(r.Context(), todoID, req.Completed)
	if err != nil {
		if errors.Is(err, todo.ErrTodoNotFound) {
			http.Error(w, "Todo not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating todo %s: %v", todoID, err)
		http.Error(w, "Failed to update todo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toTodoResponse(t))
}

// handleDeleteTodo deletes a todo and cleans up its stored attachment
func (h *TodoHandler) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	todoID := r.PathValue("id")
	if todoID == "" {
		http.Error(w, "Todo ID is required", http.StatusBadRequest)
		return
	}

	if err := h.todos.Delete(r.Context(), todoID); err != nil {
		if errors.Is(err, todo.ErrTodoNotFound) {
			http.Error(w, "Todo not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting todo %s: %v", todoID, err)
		http.Error(w, "Failed to delete todo", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
