// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/blog-go/internal/model"
)

const projectColumns = "id, title, description, tags, github, link, color, created_at"

// CreateProjectParams holds the fields for creating a project card.
type CreateProjectParams struct {
	Title       string
	Description string
	Tags        []string
	GitHub      string
	Link        string
	Color       string
	CreatedAt   time.Time
}

// CreateProject inserts a new project and returns it with its assigned ID.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (model.Project, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO projects (title, description, tags, github, link, color, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Description, model.JoinTags(arg.Tags), arg.GitHub, arg.Link, arg.Color, arg.CreatedAt)
	if err != nil {
		return model.Project{}, fmt.Errorf("inserting project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Project{}, fmt.Errorf("resolving project id: %w", err)
	}
	tags := arg.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Project{
		ID:          id,
		Title:       arg.Title,
		Description: arg.Description,
		Tags:        tags,
		GitHub:      arg.GitHub,
		Link:        arg.Link,
		Color:       arg.Color,
		CreatedAt:   arg.CreatedAt,
	}, nil
}

// ListProjects returns all projects newest first.
func (q *Queries) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		var tags string
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &tags, &p.GitHub, &p.Link, &p.Color, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Tags = model.SplitTags(tags)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
