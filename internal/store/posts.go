// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/blog-go/internal/model"
)

const postColumns = "id, title, excerpt, content, date, category, created_at, updated_at"

// CreatePostParams holds the fields for creating a post.
type CreatePostParams struct {
	Title     string
	Excerpt   string
	Content   string
	Date      string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePost inserts a new post and returns it with its assigned ID.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO posts (title, excerpt, content, date, category, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Excerpt, arg.Content, arg.Date, arg.Category, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Post{}, fmt.Errorf("inserting post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Post{}, fmt.Errorf("resolving post id: %w", err)
	}
	return model.Post{
		ID:        id,
		Title:     arg.Title,
		Excerpt:   arg.Excerpt,
		Content:   arg.Content,
		Date:      arg.Date,
		Category:  arg.Category,
		CreatedAt: arg.CreatedAt,
		UpdatedAt: arg.UpdatedAt,
	}, nil
}

// GetPostByID returns a single post. Returns sql.ErrNoRows if absent.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (model.Post, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = ?", id)
	return scanPost(row)
}

// ListPostsParams holds pagination for listing posts.
type ListPostsParams struct {
	Limit  int64
	Offset int64
}

// ListPosts returns posts ordered newest first.
func (q *Queries) ListPosts(ctx context.Context, arg ListPostsParams) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+postColumns+" FROM posts ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		arg.Limit, arg.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountPosts returns the total number of posts.
func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}

// UpdatePostParams holds the fields for updating a post in place.
type UpdatePostParams struct {
	ID        int64
	Title     string
	Excerpt   string
	Content   string
	Date      string
	Category  string
	UpdatedAt time.Time
}

// UpdatePost overwrites a post's fields. The caller is expected to have
// resolved the post first; updating an absent id affects zero rows.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, excerpt = ?, content = ?, date = ?, category = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Title, arg.Excerpt, arg.Content, arg.Date, arg.Category, arg.UpdatedAt, arg.ID)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}
	return nil
}

// DeletePost removes a post permanently.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Date, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
