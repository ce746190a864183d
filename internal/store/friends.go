// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/blog-go/internal/model"
)

const friendColumns = "id, name, url, description, avatar, approved, created_at"

// CreateFriendParams holds the fields for creating a friend link.
// Visitor applications pass Approved=false; admin creation passes true.
type CreateFriendParams struct {
	Name        string
	URL         string
	Description string
	Avatar      string
	Approved    bool
	CreatedAt   time.Time
}

// CreateFriend inserts a new friend link and returns it with its assigned ID.
func (q *Queries) CreateFriend(ctx context.Context, arg CreateFriendParams) (model.FriendLink, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO friends (name, url, description, avatar, approved, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.URL, arg.Description, arg.Avatar, arg.Approved, arg.CreatedAt)
	if err != nil {
		return model.FriendLink{}, fmt.Errorf("inserting friend link: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.FriendLink{}, fmt.Errorf("resolving friend link id: %w", err)
	}
	return model.FriendLink{
		ID:          id,
		Name:        arg.Name,
		URL:         arg.URL,
		Description: arg.Description,
		Avatar:      arg.Avatar,
		Approved:    arg.Approved,
		CreatedAt:   arg.CreatedAt,
	}, nil
}

// GetFriendByID returns a single friend link. Returns sql.ErrNoRows if absent.
func (q *Queries) GetFriendByID(ctx context.Context, id int64) (model.FriendLink, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+friendColumns+" FROM friends WHERE id = ?", id)
	return scanFriend(row)
}

// ListApprovedFriends returns the publicly visible friend links.
func (q *Queries) ListApprovedFriends(ctx context.Context) ([]model.FriendLink, error) {
	return q.listFriendsWhere(ctx, "approved = 1")
}

// ListPendingFriends returns links awaiting moderation.
func (q *Queries) ListPendingFriends(ctx context.Context) ([]model.FriendLink, error) {
	return q.listFriendsWhere(ctx, "approved = 0")
}

func (q *Queries) listFriendsWhere(ctx context.Context, cond string) ([]model.FriendLink, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+friendColumns+" FROM friends WHERE "+cond+" ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing friend links: %w", err)
	}
	defer rows.Close()

	var friends []model.FriendLink
	for rows.Next() {
		f, err := scanFriend(rows)
		if err != nil {
			return nil, err
		}
		friends = append(friends, f)
	}
	return friends, rows.Err()
}

// ApproveFriend flips a pending link to approved.
func (q *Queries) ApproveFriend(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "UPDATE friends SET approved = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("approving friend link: %w", err)
	}
	return nil
}

// DeleteFriend removes a friend link permanently, pending or approved.
func (q *Queries) DeleteFriend(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM friends WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting friend link: %w", err)
	}
	return nil
}

func scanFriend(row rowScanner) (model.FriendLink, error) {
	var f model.FriendLink
	err := row.Scan(&f.ID, &f.Name, &f.URL, &f.Description, &f.Avatar, &f.Approved, &f.CreatedAt)
	return f, err
}
