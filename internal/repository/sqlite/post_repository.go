package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-server/internal/domain"
	"blog-server/internal/repository"
)

const createPostsTable = `
CREATE TABLE IF NOT EXISTS blog_posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	author_id INTEGER NOT NULL,
	title TEXT NOT NULL UNIQUE,
	subtitle TEXT NOT NULL,
	date TEXT NOT NULL,
	body TEXT NOT NULL,
	img_url TEXT NOT NULL,
	FOREIGN KEY(author_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_blog_posts_author_id ON blog_posts(author_id);
`

const selectPosts = `
SELECT p.id, p.author_id, u.name, p.title, p.subtitle, p.date, p.body, p.img_url
FROM blog_posts p
JOIN users u ON u.id = p.author_id`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

// Init creates the posts table. The users table must exist first.
func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostsTable); err != nil {
		return fmt.Errorf("create blog_posts table: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO blog_posts (author_id, title, subtitle, date, body, img_url)
VALUES (?, ?, ?, ?, ?, ?)`,
		post.AuthorID,
		post.Title,
		post.Subtitle,
		post.Date,
		post.Body,
		post.ImgURL,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return 0, fmt.Errorf("title %q already used: %w", post.Title, domain.ErrConflict)
		case isForeignKeyViolation(err):
			return 0, fmt.Errorf("author %d: %w", post.AuthorID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("post last insert id: %w", err)
	}
	post.ID = id
	return id, nil
}

// Update rewrites the editable fields of a post. Author and date are left untouched.
func (r *PostRepository) Update(ctx context.Context, id int64, content domain.PostContent) (*domain.Post, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := scanPost(tx.QueryRowContext(ctx, selectPosts+` WHERE p.id=?`, id)); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE blog_posts
SET title=?, subtitle=?, body=?, img_url=?
WHERE id=?`,
		content.Title,
		content.Subtitle,
		content.Body,
		content.ImgURL,
		id,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("title %q already used: %w", content.Title, domain.ErrConflict)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	post, err := scanPost(tx.QueryRowContext(ctx, selectPosts+` WHERE p.id=?`, id))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit post update: %w", err)
	}
	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("post delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("post %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostRepository) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return scanPost(r.db.QueryRowContext(ctx, selectPosts+` WHERE p.id=?`, id))
}

func (r *PostRepository) GetByTitle(ctx context.Context, title string) (*domain.Post, error) {
	return scanPost(r.db.QueryRowContext(ctx, selectPosts+` WHERE p.title=?`, title))
}

func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	return r.queryPosts(ctx, selectPosts+` ORDER BY p.id ASC`)
}

// ListByAuthor returns the posts written by one user, oldest first.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error) {
	return r.queryPosts(ctx, selectPosts+` WHERE p.author_id=? ORDER BY p.id ASC`, authorID)
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	return posts, rows.Err()
}

func scanPost(scanner interface {
	Scan(dest ...any) error
}) (*domain.Post, error) {
	var post domain.Post
	if err := scanner.Scan(
		&post.ID,
		&post.AuthorID,
		&post.AuthorName,
		&post.Title,
		&post.Subtitle,
		&post.Date,
		&post.Body,
		&post.ImgURL,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return &post, nil
}
