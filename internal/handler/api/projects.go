// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/blog-go/internal/model"
	"github.com/olegiv/blog-go/internal/store"
)

// CreateProjectRequest is the request body for adding a portfolio project.
type CreateProjectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	GitHub      string   `json:"github"`
	Link        string   `json:"link"`
	Color       string   `json:"color"`
}

// ListProjects handles GET /api/projects. Public.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.queries.ListProjects(r.Context())
	if err != nil {
		slog.Error("failed to list projects", "error", err)
		WriteInternalError(w, "Failed to list projects")
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	WriteSuccess(w, projects, nil)
}

// CreateProject handles POST /api/projects. Requires admin.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Title == "" {
		WriteValidationError(w, map[string]string{"title": "Title is required"})
		return
	}

	project, err := h.queries.CreateProject(r.Context(), store.CreateProjectParams{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		GitHub:      req.GitHub,
		Link:        req.Link,
		Color:       req.Color,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("failed to create project", "error", err)
		WriteInternalError(w, "Failed to create project")
		return
	}

	WriteCreated(w, project)
}
