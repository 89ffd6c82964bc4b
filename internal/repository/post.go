package repository

import (
	"context"

	"blog-server/internal/domain"
)

// PostRepository exposes persistence operations for blog posts.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (int64, error)
	Update(ctx context.Context, id int64, content domain.PostContent) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Post, error)
	GetByTitle(ctx context.Context, title string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error)
}
