// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/blog-go/internal/model"
)

const messageColumns = "id, name, content, date, created_at"

// CreateMessageParams holds the fields for creating a message board entry.
type CreateMessageParams struct {
	Name      string
	Content   string
	Date      string
	CreatedAt time.Time
}

// CreateMessage appends a new message and returns it with its assigned ID.
func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (model.Message, error) {
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO messages (name, content, date, created_at) VALUES (?, ?, ?, ?)",
		arg.Name, arg.Content, arg.Date, arg.CreatedAt)
	if err != nil {
		return model.Message{}, fmt.Errorf("inserting message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Message{}, fmt.Errorf("resolving message id: %w", err)
	}
	return model.Message{
		ID:        id,
		Name:      arg.Name,
		Content:   arg.Content,
		Date:      arg.Date,
		CreatedAt: arg.CreatedAt,
	}, nil
}

// GetMessageByID returns a single message. Returns sql.ErrNoRows if absent.
func (q *Queries) GetMessageByID(ctx context.Context, id int64) (model.Message, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE id = ?", id)
	return scanMessage(row)
}

// ListMessagesParams holds pagination for listing messages.
type ListMessagesParams struct {
	Limit  int64
	Offset int64
}

// ListMessages returns messages newest first.
func (q *Queries) ListMessages(ctx context.Context, arg ListMessagesParams) ([]model.Message, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM messages ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		arg.Limit, arg.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CountMessages returns the total number of messages.
func (q *Queries) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&count)
	return count, err
}

// DeleteMessage removes a message permanently.
func (q *Queries) DeleteMessage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	return nil
}

func scanMessage(row rowScanner) (model.Message, error) {
	var m model.Message
	err := row.Scan(&m.ID, &m.Name, &m.Content, &m.Date, &m.CreatedAt)
	return m, err
}
