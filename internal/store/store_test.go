package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func postRows(posts ...Post) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "content", "image", "video", "type", "date", "platforms", "status", "created_at",
	})
	for _, p := range posts {
		rows.AddRow(p.ID, p.Content, p.Image, p.Video, p.Type, p.Date, pq.Array(p.Platforms), p.Status, p.CreatedAt)
	}
	return rows
}

func TestCreatePostDefaults(t *testing.T) {
	store, mock := newMockStore(t)
	createdAt := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO posts").WithArgs(
		"Bonjour #go",
		"",
		"",
		"text",
		sqlmock.AnyArg(),
		sqlmock.AnyArg(),
		"scheduled",
	).WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, createdAt))

	post, err := store.CreatePost(context.Background(), Post{
		Content:   "Bonjour #go",
		Date:      time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Platforms: []string{"linkedin"},
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.ID != 7 {
		t.Fatalf("unexpected id: %d", post.ID)
	}
	if post.Type != "text" || post.Status != StatusScheduled {
		t.Fatalf("defaults not applied: type=%s status=%s", post.Type, post.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetPostNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT .* FROM posts").WithArgs(42).WillReturnRows(postRows())

	_, err := store.GetPost(context.Background(), 42)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPostsScansPlatformsArray(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .* FROM posts").WillReturnRows(postRows(Post{
		ID:        1,
		Content:   "hello",
		Type:      "text",
		Date:      now,
		Platforms: []string{"instagram", "twitter"},
		Status:    StatusScheduled,
		CreatedAt: now,
	}))

	posts, err := store.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if len(posts[0].Platforms) != 2 || posts[0].Platforms[0] != "instagram" {
		t.Fatalf("unexpected platforms: %v", posts[0].Platforms)
	}
}

func TestUpdatePostPartial(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	status := StatusSent

	mock.ExpectQuery("UPDATE posts SET").WithArgs(
		3,
		nil,
		"",
		"",
		nil,
		nil,
		nil,
		&status,
	).WillReturnRows(postRows(Post{
		ID:        3,
		Content:   "unchanged",
		Type:      "text",
		Date:      now,
		Platforms: []string{"linkedin"},
		Status:    StatusSent,
		CreatedAt: now,
	}))

	post, err := store.UpdatePost(context.Background(), 3, PostUpdate{Status: &status})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if post.Status != StatusSent {
		t.Fatalf("unexpected status: %s", post.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("UPDATE posts SET").WillReturnRows(postRows())

	content := "new"
	_, err := store.UpdatePost(context.Background(), 99, PostUpdate{Content: &content})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM posts").WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
	if err := store.DeletePost(context.Background(), 5); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	mock.ExpectExec("DELETE FROM posts").WithArgs(6).WillReturnResult(sqlmock.NewResult(0, 0))
	if err := store.DeletePost(context.Background(), 6); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRoundTrip(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO users").WithArgs("alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("uuid-1", now))

	user, err := store.CreateUser(context.Background(), "alice", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID != "uuid-1" {
		t.Fatalf("unexpected id: %s", user.ID)
	}

	mock.ExpectQuery("SELECT id, username, password, created_at").WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}).
			AddRow("uuid-1", "alice", "hash", now))

	fetched, err := store.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if fetched.Password != "hash" {
		t.Fatalf("unexpected password hash: %s", fetched.Password)
	}

	mock.ExpectQuery("SELECT id, username, password, created_at").WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}))

	if _, err := store.GetUserByUsername(context.Background(), "bob"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
