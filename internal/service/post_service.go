package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blog-server/internal/domain"
	"blog-server/internal/repository"
)

// ErrTitleTaken is returned when another post already uses the title.
var ErrTitleTaken = fmt.Errorf("title already used: %w", domain.ErrConflict)

// PostService coordinates post operations backed by repositories.
type PostService interface {
	ListPosts(ctx context.Context) ([]domain.Post, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	CreatePost(ctx context.Context, authorID int64, content domain.PostContent) (*domain.Post, error)
	UpdatePost(ctx context.Context, id int64, content domain.PostContent) (*domain.Post, error)
	DeletePost(ctx context.Context, id int64) (*domain.Post, error)
}

type postService struct {
	posts repository.PostRepository
	users repository.UserRepository
	now   func() time.Time
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository) PostService {
	return &postService{
		posts: posts,
		users: users,
		now:   time.Now,
	}
}

func (s *postService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *postService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.Get(ctx, id)
}

// CreatePost stamps today's date on the post; it is never recomputed afterwards.
func (s *postService) CreatePost(ctx context.Context, authorID int64, content domain.PostContent) (*domain.Post, error) {
	content = trimContent(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("post author: %w", err)
	}
	if err := s.ensureTitleFree(ctx, content.Title, 0); err != nil {
		return nil, err
	}

	post := &domain.Post{
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Title:      content.Title,
		Subtitle:   content.Subtitle,
		Date:       s.now().Format(domain.PostDateLayout),
		Body:       content.Body,
		ImgURL:     content.ImgURL,
	}
	if _, err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, id int64, content domain.PostContent) (*domain.Post, error) {
	content = trimContent(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if _, err := s.posts.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.ensureTitleFree(ctx, content.Title, id); err != nil {
		return nil, err
	}

	post, err := s.posts.Update(ctx, id, content)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and returns what was deleted.
func (s *postService) DeletePost(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) ensureTitleFree(ctx context.Context, title string, exceptID int64) error {
	existing, err := s.posts.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != exceptID {
		return ErrTitleTaken
	}
	return nil
}

func trimContent(content domain.PostContent) domain.PostContent {
	content.Title = strings.TrimSpace(content.Title)
	content.Subtitle = strings.TrimSpace(content.Subtitle)
	content.ImgURL = strings.TrimSpace(content.ImgURL)
	return content
}

func validateContent(content domain.PostContent) error {
	switch {
	case content.Title == "":
		return invalid("title", "This field is required.")
	case content.Subtitle == "":
		return invalid("subtitle", "This field is required.")
	case strings.TrimSpace(content.Body) == "":
		return invalid("body", "This field is required.")
	case content.ImgURL == "":
		return invalid("img_url", "This field is required.")
	}
	return nil
}
