package attachment

import (
	"context"
	"io"
)

// Store is the object storage surface for todo attachments.
//
// This is intentionally separate from todo.Repository to keep row and blob
// responsibilities decoupled; both backends (local disk, GCS bucket)
// implement it, and tests substitute an in-memory fake.
type Store interface {
	// Upload stores the object under key and makes it publicly readable.
	Upload(ctx context.Context, key, contentType string, r io.Reader) error

	// PublicURL returns the URL under which an uploaded key is served.
	PublicURL(key string) string

	// Remove deletes the object. Removing a key that does not exist is not
	// an error; cleanup is best-effort and may run more than once.
	Remove(ctx context.Context, key string) error

	// List returns all stored keys. Used by the admin orphan-check.
	List(ctx context.Context) ([]string, error)
}
