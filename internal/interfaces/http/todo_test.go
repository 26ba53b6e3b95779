package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"snaplist/internal/domain/todo"
)

// MockTodoRepo implements todo.Repository for testing
type MockTodoRepo struct {
	CreateFunc       func(ctx context.Context, params todo.CreateParams) (*todo.Todo, error)
	GetByIDFunc      func(ctx context.Context, id string) (*todo.Todo, error)
	ListFunc         func(ctx context.Context) ([]*todo.Todo, error)
	SetCompletedFunc func(ctx context.Context, id string, completed bool) (*todo.Todo, error)
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockTodoRepo) Create(ctx context.Context, params todo.CreateParams) (*todo.Todo, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockTodoRepo) GetByID(ctx context.Context, id string) (*todo.Todo, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTodoRepo) List(ctx context.Context) ([]*todo.Todo, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockTodoRepo) SetCompleted(ctx context.Context, id string, completed bool) (*todo.Todo, error) {
	if m.SetCompletedFunc != nil {
		return m.SetCompletedFunc(ctx, id, completed)
	}
	return nil, nil
}

func (m *MockTodoRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockStore implements attachment.Store for testing
type MockStore struct {
	UploadFunc func(ctx context.Context, key, contentType string, r io.Reader) error
	Removed    []string
}

func (m *MockStore) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, key, contentType, r)
	}
	return nil
}

func (m *MockStore) PublicURL(key string) string {
	return "/uploads/" + key
}

func (m *MockStore) Remove(ctx context.Context, key string) error {
	m.Removed = append(m.Removed, key)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func newTodoHandler(repo todo.Repository, store *MockStore) *TodoHandler {
	if store == nil {
		store = &MockStore{}
	}
	return NewTodoHandler(todo.NewService(repo, store))
}

func TestHandleTodos_List(t *testing.T) {
	tests := []struct {
		name           string
		mockRepo       func() *MockTodoRepo
		expectedStatus int
		expectedLen    int
	}{
		{
			name: "Success",
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					ListFunc: func(ctx context.Context) ([]*todo.Todo, error) {
						return []*todo.Todo{
							{ID: "todo-2", Title: "Newer", CreatedAt: time.Now()},
							{ID: "todo-1", Title: "Older", CreatedAt: time.Now().Add(-time.Hour)},
						}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name: "Empty List",
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					ListFunc: func(ctx context.Context) ([]*todo.Todo, error) {
						return []*todo.Todo{}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name: "Repository Error",
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					ListFunc: func(ctx context.Context) ([]*todo.Todo, error) {
						return nil, errors.New("db error")
					},
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTodoHandler(tt.mockRepo(), nil)

			req := httptest.NewRequest(http.MethodGet, "/api/todos/", nil)
			rr := httptest.NewRecorder()
			handler.HandleTodos(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				// Empty lists must encode as [], not null
				var todos []TodoResponse
				if err := json.NewDecoder(rr.Body).Decode(&todos); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if rr.Body.String() == "null\n" {
					t.Error("list response should never be null")
				}
				if len(todos) != tt.expectedLen {
					t.Errorf("response length = %d, want %d", len(todos), tt.expectedLen)
				}
			}
		})
	}
}

func TestHandleTodos_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		mockRepo       func() *MockTodoRepo
		expectedStatus int
	}{
		{
			name: "Success without image",
			body: map[string]interface{}{"title": "Buy milk"},
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					CreateFunc: func(ctx context.Context, params todo.CreateParams) (*todo.Todo, error) {
						return &todo.Todo{ID: "todo-1", Title: params.Title, CreatedAt: time.Now()}, nil
					},
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Success with image",
			body: map[string]interface{}{
				"title":     "With photo",
				"imageUrl":  "/uploads/1700000000000-k9x2.jpg",
				"imageName": "photo.jpg",
			},
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					CreateFunc: func(ctx context.Context, params todo.CreateParams) (*todo.Todo, error) {
						return &todo.Todo{
							ID:        "todo-1",
							Title:     params.Title,
							ImageURL:  params.ImageURL,
							ImageName: params.ImageName,
							CreatedAt: time.Now(),
						}, nil
					},
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing title",
			body:           map[string]interface{}{"imageUrl": ""},
			mockRepo:       func() *MockTodoRepo { return &MockTodoRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Image URL without name",
			body: map[string]interface{}{
				"title":    "Broken",
				"imageUrl": "/uploads/a.png",
			},
			mockRepo:       func() *MockTodoRepo { return &MockTodoRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Repository Error",
			body: map[string]interface{}{"title": "Buy milk"},
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					CreateFunc: func(ctx context.Context, params todo.CreateParams) (*todo.Todo, error) {
						return nil, errors.New("db error")
					},
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTodoHandler(tt.mockRepo(), nil)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/todos/", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			handler.HandleTodos(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleTodoByID_Update(t *testing.T) {
	tests := []struct {
		name           string
		completed      bool
		mockRepo       func() *MockTodoRepo
		expectedStatus int
	}{
		{
			name:      "Success",
			completed: true,
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					SetCompletedFunc: func(ctx context.Context, id string, completed bool) (*todo.Todo, error) {
						return &todo.Todo{ID: id, Title: "Toggle me", Completed: completed}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "Not Found",
			completed: true,
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					SetCompletedFunc: func(ctx context.Context, id string, completed bool) (*todo.Todo, error) {
						return nil, todo.ErrTodoNotFound
					},
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:      "Repository Error",
			completed: true,
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					SetCompletedFunc: func(ctx context.Context, id string, completed bool) (*todo.Todo, error) {
						return nil, errors.New("db error")
					},
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTodoHandler(tt.mockRepo(), nil)

			body, _ := json.Marshal(UpdateTodoRequest{Completed: tt.completed})
			req := httptest.NewRequest(http.MethodPut, "/api/todos/todo-1", bytes.NewReader(body))
			req.SetPathValue("id", "todo-1")
			rr := httptest.NewRecorder()
			handler.HandleTodoByID(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				var resp TodoResponse
				json.NewDecoder(rr.Body).Decode(&resp)
				if resp.Completed != tt.completed {
					t.Errorf("completed = %v, want %v", resp.Completed, tt.completed)
				}
			}
		})
	}
}

func TestHandleTodoByID_Delete(t *testing.T) {
	existing := &todo.Todo{
		ID:        "todo-1",
		Title:     "With photo",
		ImageURL:  "/uploads/1700000000000-k9x2.jpg",
		ImageName: "photo.jpg",
	}

	tests := []struct {
		name           string
		mockRepo       func() *MockTodoRepo
		expectedStatus int
		wantRemoved    []string
	}{
		{
			name: "Success with attachment cleanup",
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					GetByIDFunc: func(ctx context.Context, id string) (*todo.Todo, error) {
						return existing, nil
					},
				}
			},
			expectedStatus: http.StatusNoContent,
			wantRemoved:    []string{"1700000000000-k9x2.jpg"},
		},
		{
			name: "Success without attachment",
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					GetByIDFunc: func(ctx context.Context, id string) (*todo.Todo, error) {
						return &todo.Todo{ID: id, Title: "Plain"}, nil
					},
				}
			},
			expectedStatus: http.StatusNoContent,
			wantRemoved:    nil,
		},
		{
			name: "Not Found",
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					GetByIDFunc: func(ctx context.Context, id string) (*todo.Todo, error) {
						return nil, nil
					},
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Repository Error",
			mockRepo: func() *MockTodoRepo {
				return &MockTodoRepo{
					GetByIDFunc: func(ctx context.Context, id string) (*todo.Todo, error) {
						return existing, nil
					},
					DeleteFunc: func(ctx context.Context, id string) error {
						return errors.New("db error")
					},
				}
			},
			expectedStatus: http.StatusInternalServerError,
			wantRemoved:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStore{}
			handler := newTodoHandler(tt.mockRepo(), store)

			req := httptest.NewRequest(http.MethodDelete, "/api/todos/todo-1", nil)
			req.SetPathValue("id", "todo-1")
			rr := httptest.NewRecorder()
			handler.HandleTodoByID(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}

			if len(store.Removed) != len(tt.wantRemoved) {
				t.Fatalf("Removed = %v, want %v", store.Removed, tt.wantRemoved)
			}
			for i := range tt.wantRemoved {
				if store.Removed[i] != tt.wantRemoved[i] {
					t.Errorf("Removed[%d] = %q, want %q", i, store.Removed[i], tt.wantRemoved[i])
				}
			}
		})
	}
}

func TestHandleTodos_MethodNotAllowed(t *testing.T) {
	handler := newTodoHandler(&MockTodoRepo{}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/todos/", nil)
	rr := httptest.NewRecorder()
	handler.HandleTodos(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
