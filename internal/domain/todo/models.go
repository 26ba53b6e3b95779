package todo

import (
	"errors"
	"time"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
)

type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	ImageName string    `json:"imageName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateParams struct {
	Title     string
	ImageURL  string
	ImageName string
}

func (p *CreateParams) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	if len(p.Title) > 255 {
		return errors.New("title must be 255 characters or less")
	}
	// An attachment is a URL plus the original file name; one without the
	// other means the upload step was skipped or its result dropped.
	if (p.ImageURL == "") != (p.ImageName == "") {
		return errors.New("imageUrl and imageName must be provided together")
	}
	return nil
}
