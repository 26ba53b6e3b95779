package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"snaplist/internal/domain/todo"
)

type TodoRepository struct {
	db *DB
}

func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// image_url and image_name are nullable; the domain model uses "" for absent.
func (r *TodoRepository) Create(ctx context.Context, params todo.CreateParams) (*todo.Todo, error) {
	query := `
		INSERT INTO todos (title, image_url, image_name)
		VALUES ($1, $2, $3)
		RETURNING id, title, completed, COALESCE(image_url, ''), COALESCE(image_name, ''), created_at
	`

	var t todo.Todo
	err := r.db.QueryRowContext(
		ctx, query,
		params.Title, nullable(params.ImageURL), nullable(params.ImageName),
	).Scan(
		&t.ID, &t.Title, &t.Completed, &t.ImageURL, &t.ImageName, &t.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return &t, nil
}

func (r *TodoRepository) GetByID(ctx context.Context, id string) (*todo.Todo, error) {
	query := `
		SELECT id, title, completed, COALESCE(image_url, ''), COALESCE(image_name, ''), created_at
		FROM todos
		WHERE id = $1
	`

	var t todo.Todo
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Completed, &t.ImageURL, &t.ImageName, &t.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return &t, nil
}

func (r *TodoRepository) List(ctx context.Context) ([]*todo.Todo, error) {
	query := `
		SELECT id, title, completed, COALESCE(image_url, ''), COALESCE(image_name, ''), created_at
		FROM todos
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*todo.Todo
	for rows.Next() {
		var t todo.Todo
		err := rows.Scan(
			&t.ID, &t.Title, &t.Completed, &t.ImageURL, &t.ImageName, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

func (r *TodoRepository) SetCompleted(ctx context.Context, id string, completed bool) (*todo.Todo, error) {
	query := `
		UPDATE todos
		SET completed = $1
		WHERE id = $2
		RETURNING id, title, completed, COALESCE(image_url, ''), COALESCE(image_name, ''), created_at
	`

	var t todo.Todo
	err := r.db.QueryRowContext(ctx, query, completed, id).Scan(
		&t.ID, &t.Title, &t.Completed, &t.ImageURL, &t.ImageName, &t.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, todo.ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return &t, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM todos WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return todo.ErrTodoNotFound
	}

	return nil
}

// ImageURLs returns the distinct non-null image URLs across all todos.
// Used by the admin orphan-check to diff against stored objects.
func (r *TodoRepository) ImageURLs(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT image_url FROM todos WHERE image_url IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list image URLs: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan image URL: %w", err)
		}
		urls = append(urls, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating image URLs: %w", err)
	}

	return urls, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
