// Package repository defines the storage interfaces consumed by the service
// layer. The sqlite subpackage provides the concrete implementation; tests
// substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/pranaykumar2/private-blog/internal/model"
)

// ListOptions controls pagination for list queries.
// A Limit <= 0 means "no limit": list endpoints are unpaginated by default.
type ListOptions struct {
	Limit  int
	Offset int
}

type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id int64) (*model.Blog, error)
	// List returns blogs ordered by id ascending (stable insertion order).
	List(ctx context.Context, opts ListOptions) ([]model.Blog, error)
	// ListByAuthor returns one author's blogs ordered by id ascending.
	ListByAuthor(ctx context.Context, authorID int64, opts ListOptions) ([]model.Blog, error)
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository methods carry the entity in their names so one storage type
// can implement both repositories over a shared connection.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
}
