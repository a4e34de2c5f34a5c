// Package store is the persistence layer for scheduled posts and user
// accounts, backed by PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Post statuses.
const (
	StatusScheduled = "scheduled"
	StatusSent      = "sent"
	StatusPublished = "published"
)

// Post is a scheduled publication. JSON tags match the composer API.
type Post struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Video     string    `json:"video,omitempty"`
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	Platforms []string  `json:"platforms"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostUpdate carries a partial update. Nil fields are left untouched.
type PostUpdate struct {
	Content   *string    `json:"content,omitempty"`
	Image     *string    `json:"image,omitempty"`
	Video     *string    `json:"video,omitempty"`
	Type      *string    `json:"type,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Platforms []string   `json:"platforms,omitempty"`
	Status    *string    `json:"status,omitempty"`
}

// User is an account that can sign in to the composer.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store wraps the SQL database.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const postColumns = `id, content, COALESCE(image, ''), COALESCE(video, ''), type, date, platforms, status, created_at`

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var p Post
	err := row.Scan(
		&p.ID,
		&p.Content,
		&p.Image,
		&p.Video,
		&p.Type,
		&p.Date,
		pq.Array(&p.Platforms),
		&p.Status,
		&p.CreatedAt,
	)
	return p, err
}

// ListPosts returns every post, newest scheduled date first.
func (s *Store) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		ORDER BY date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns a single post by id.
func (s *Store) GetPost(ctx context.Context, id int) (Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE id = $1
	`, id)

	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, fmt.Errorf("get post %d: %w", id, err)
	}
	return p, nil
}

// CreatePost inserts a post and returns it with its generated id and
// creation timestamp.
func (s *Store) CreatePost(ctx context.Context, p Post) (Post, error) {
	if p.Type == "" {
		p.Type = "text"
	}
	if p.Status == "" {
		p.Status = StatusScheduled
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (content, image, video, type, date, platforms, status)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		p.Content,
		p.Image,
		p.Video,
		p.Type,
		p.Date,
		pq.Array(p.Platforms),
		p.Status,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return Post{}, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

// UpdatePost applies a partial update and returns the updated row.
func (s *Store) UpdatePost(ctx context.Context, id int, upd PostUpdate) (Post, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE posts SET
			content = COALESCE($2, content),
			image = COALESCE(NULLIF($3, ''), image),
			video = COALESCE(NULLIF($4, ''), video),
			type = COALESCE($5, type),
			date = COALESCE($6, date),
			platforms = COALESCE($7, platforms),
			status = COALESCE($8, status)
		WHERE id = $1
		RETURNING `+postColumns+`
	`,
		id,
		upd.Content,
		deref(upd.Image),
		deref(upd.Video),
		upd.Type,
		upd.Date,
		platformsArg(upd.Platforms),
		upd.Status,
	)

	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, fmt.Errorf("update post %d: %w", id, err)
	}
	return p, nil
}

// DeletePost removes a post by id.
func (s *Store) DeletePost(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateUser inserts a user with an already-hashed password.
func (s *Store) CreateUser(ctx context.Context, username, hashedPassword string) (User, error) {
	u := User{Username: username, Password: hashedPassword}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, username, hashedPassword)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetUserByUsername looks up a user for login.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, created_at
		FROM users
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user %s: %w", username, err)
	}
	return u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// platformsArg keeps a nil slice as SQL NULL so COALESCE preserves the
// stored value, while a non-nil slice replaces it.
func platformsArg(platforms []string) any {
	if platforms == nil {
		return nil
	}
	return pq.Array(platforms)
}
