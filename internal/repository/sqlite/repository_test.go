package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"blog-server/internal/domain"
	"blog-server/internal/repository"
)

func openTestRepos(t *testing.T) (repository.UserRepository, repository.PostRepository) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "blog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	if err := users.Init(ctx); err != nil {
		t.Fatalf("init users: %v", err)
	}
	if err := posts.Init(ctx); err != nil {
		t.Fatalf("init posts: %v", err)
	}
	return users, posts
}

func createUser(t *testing.T, users repository.UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, Name: "Test", PasswordHash: "digest"}
	if _, err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func TestUserCreateAssignsSequentialIDs(t *testing.T) {
	users, _ := openTestRepos(t)

	first := createUser(t, users, "admin@example.com")
	second := createUser(t, users, "alice@example.com")

	if first.ID != domain.AdminUserID {
		t.Fatalf("first user id = %d, want %d", first.ID, domain.AdminUserID)
	}
	if second.ID != 2 {
		t.Fatalf("second user id = %d, want 2", second.ID)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	createUser(t, users, "alice@example.com")

	_, err := users.Create(ctx, &domain.User{Email: "alice@example.com", Name: "Other", PasswordHash: "x"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate email error = %v, want ErrConflict", err)
	}

	user, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if user.Name != "Test" {
		t.Fatalf("stored user name = %q, want original", user.Name)
	}
}

func TestUserLookupMissing(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	if _, err := users.GetByID(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID error = %v, want ErrNotFound", err)
	}
	if _, err := users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByEmail error = %v, want ErrNotFound", err)
	}
}

func TestPostLifecycle(t *testing.T) {
	users, posts := openTestRepos(t)
	ctx := context.Background()
	author := createUser(t, users, "admin@example.com")

	post := &domain.Post{
		AuthorID: author.ID,
		Title:    "Hello",
		Subtitle: "First",
		Date:     "October 15, 2026",
		Body:     "<p>hi</p>",
		ImgURL:   "https://example.com/a.png",
	}
	if _, err := posts.Create(ctx, post); err != nil {
		t.Fatalf("create post: %v", err)
	}

	got, err := posts.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.AuthorName != "Test" || got.Title != "Hello" {
		t.Fatalf("unexpected post: %#v", got)
	}

	updated, err := posts.Update(ctx, post.ID, domain.PostContent{
		Title:    "Hello again",
		Subtitle: "Second",
		Body:     "<p>changed</p>",
		ImgURL:   "https://example.com/b.png",
	})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.AuthorID != author.ID || updated.Date != "October 15, 2026" {
		t.Fatalf("update changed author or date: %#v", updated)
	}
	if updated.Title != "Hello again" || updated.Body != "<p>changed</p>" || updated.ImgURL != "https://example.com/b.png" {
		t.Fatalf("update did not apply: %#v", updated)
	}

	if err := posts.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if err := posts.Delete(ctx, post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete error = %v, want ErrNotFound", err)
	}

	list, err := posts.List(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no posts, got %d", len(list))
	}
}

func TestPostDuplicateTitle(t *testing.T) {
	users, posts := openTestRepos(t)
	ctx := context.Background()
	author := createUser(t, users, "admin@example.com")

	newPost := func(title string) *domain.Post {
		return &domain.Post{AuthorID: author.ID, Title: title, Subtitle: "s", Date: "d", Body: "b", ImgURL: "https://example.com/x.png"}
	}

	if _, err := posts.Create(ctx, newPost("Hello")); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := posts.Create(ctx, newPost("Hello")); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate create error = %v, want ErrConflict", err)
	}

	other := newPost("World")
	if _, err := posts.Create(ctx, other); err != nil {
		t.Fatalf("create second: %v", err)
	}
	_, err := posts.Update(ctx, other.ID, domain.PostContent{Title: "Hello", Subtitle: "s", Body: "b", ImgURL: "https://example.com/x.png"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("update to taken title error = %v, want ErrConflict", err)
	}

	list, err := posts.List(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Hello" || list[1].Title != "World" {
		t.Fatalf("unexpected posts after conflicts: %#v", list)
	}
}

func TestPostMissingAuthorAndPost(t *testing.T) {
	_, posts := openTestRepos(t)
	ctx := context.Background()

	_, err := posts.Create(ctx, &domain.Post{AuthorID: 7, Title: "Orphan", Subtitle: "s", Date: "d", Body: "b", ImgURL: "u"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("create with missing author error = %v, want ErrNotFound", err)
	}
	if _, err := posts.Get(ctx, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get missing error = %v, want ErrNotFound", err)
	}
	if _, err := posts.Update(ctx, 99, domain.PostContent{Title: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update missing error = %v, want ErrNotFound", err)
	}
}

func TestPostListByAuthor(t *testing.T) {
	users, posts := openTestRepos(t)
	ctx := context.Background()
	admin := createUser(t, users, "admin@example.com")
	alice := createUser(t, users, "alice@example.com")

	for _, p := range []struct {
		author *domain.User
		title  string
	}{
		{admin, "First"},
		{alice, "Guest"},
		{admin, "Second"},
	} {
		post := &domain.Post{AuthorID: p.author.ID, Title: p.title, Subtitle: "s", Date: "October 15, 2026", Body: "b", ImgURL: "https://example.com/a.png"}
		if _, err := posts.Create(ctx, post); err != nil {
			t.Fatalf("create %s: %v", p.title, err)
		}
	}

	list, err := posts.ListByAuthor(ctx, admin.ID)
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(list) != 2 || list[0].Title != "First" || list[1].Title != "Second" {
		t.Fatalf("admin posts = %#v, want First then Second", list)
	}

	none, err := posts.ListByAuthor(ctx, 99)
	if err != nil {
		t.Fatalf("list by unknown author: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("unknown author posts = %d, want 0", len(none))
	}
}

func TestForeignKeysEnforcedOnFreshConnections(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "blog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// every query below runs on a newly opened connection
	db.SetMaxIdleConns(0)

	for i := 0; i < 3; i++ {
		var enabled int
		if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled); err != nil {
			t.Fatalf("read pragma: %v", err)
		}
		if enabled != 1 {
			t.Fatalf("foreign_keys = %d on connection %d, want 1", enabled, i)
		}
	}
}
