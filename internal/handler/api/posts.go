// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/blog-go/internal/content"
	"github.com/olegiv/blog-go/internal/handler"
	"github.com/olegiv/blog-go/internal/model"
	"github.com/olegiv/blog-go/internal/store"
)

// Content formats accepted by the post endpoints. The admin editor
// submits rich HTML; pasted markdown is converted server-side.
const (
	ContentFormatHTML     = "html"
	ContentFormatMarkdown = "markdown"
)

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	ContentFormat string `json:"content_format,omitempty"`
	Date          string `json:"date"`
	Category      string `json:"category"`
}

// UpdatePostRequest represents the request body for updating a post.
// Absent fields leave the stored value unchanged.
type UpdatePostRequest struct {
	Title         *string `json:"title,omitempty"`
	Excerpt       *string `json:"excerpt,omitempty"`
	Content       *string `json:"content,omitempty"`
	ContentFormat string  `json:"content_format,omitempty"`
	Date          *string `json:"date,omitempty"`
	Category      *string `json:"category,omitempty"`
}

// prepareContent runs body content through the authoring pipeline:
// markdown is converted to HTML, and all HTML is sanitized. Returns
// false if the format is invalid (response already written).
func prepareContent(w http.ResponseWriter, body, format string) (string, bool) {
	switch format {
	case "", ContentFormatHTML:
		return content.SanitizeHTML(body), true
	case ContentFormatMarkdown:
		html, err := content.RenderMarkdown(body)
		if err != nil {
			WriteValidationError(w, map[string]string{"content": "Content could not be converted from markdown"})
			return "", false
		}
		return html, true
	default:
		WriteValidationError(w, map[string]string{"content_format": "Content format must be 'html' or 'markdown'"})
		return "", false
	}
}

// ListPosts handles GET /api/posts. Public; returns posts newest first.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := handler.ParsePageParam(r)
	perPage := handler.ParsePerPageParam(r, 20, 100)
	offset := (page - 1) * perPage

	posts, err := h.queries.ListPosts(ctx, store.ListPostsParams{
		Limit:  int64(perPage),
		Offset: int64(offset),
	})
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		WriteInternalError(w, "Failed to list posts")
		return
	}

	total, err := h.queries.CountPosts(ctx)
	if err != nil {
		slog.Error("failed to count posts", "error", err)
		WriteInternalError(w, "Failed to list posts")
		return
	}

	if posts == nil {
		posts = []model.Post{}
	}

	WriteSuccess(w, posts, &Meta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   totalPages(total, perPage),
	})
}

// GetPost handles GET /api/posts/{id}. Public and total: 404 if absent.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post", func(id int64) (model.Post, error) {
		return h.queries.GetPostByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, post, nil)
}

// CreatePost handles POST /api/posts. Requires admin.
// Creation publishes immediately; there is no draft state.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	validationErrors := make(map[string]string)
	if req.Title == "" {
		validationErrors["title"] = "Title is required"
	}
	if req.Date == "" {
		validationErrors["date"] = "Date is required"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	body, ok := prepareContent(w, req.Content, req.ContentFormat)
	if !ok {
		return
	}

	now := time.Now()
	post, err := h.queries.CreatePost(ctx, store.CreatePostParams{
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   body,
		Date:      req.Date,
		Category:  req.Category,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("failed to create post", "error", err)
		WriteInternalError(w, "Failed to create post")
		return
	}

	WriteCreated(w, post)
}

// UpdatePost handles PUT /api/posts/{id}. Requires admin.
// Edits overwrite in place; updating a missing id yields 404.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "post", func(id int64) (model.Post, error) {
		return h.queries.GetPostByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Start from existing values, apply provided fields
	params := store.UpdatePostParams{
		ID:        existing.ID,
		Title:     existing.Title,
		Excerpt:   existing.Excerpt,
		Content:   existing.Content,
		Date:      existing.Date,
		Category:  existing.Category,
		UpdatedAt: time.Now(),
	}

	if req.Title != nil {
		if *req.Title == "" {
			WriteValidationError(w, map[string]string{"title": "Title is required"})
			return
		}
		params.Title = *req.Title
	}
	if req.Excerpt != nil {
		params.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		body, ok := prepareContent(w, *req.Content, req.ContentFormat)
		if !ok {
			return
		}
		params.Content = body
	}
	if req.Date != nil {
		params.Date = *req.Date
	}
	if req.Category != nil {
		params.Category = *req.Category
	}

	if err := h.queries.UpdatePost(ctx, params); err != nil {
		slog.Error("failed to update post", "error", err, "id", existing.ID)
		WriteInternalError(w, "Failed to update post")
		return
	}

	post, err := h.queries.GetPostByID(ctx, existing.ID)
	if err != nil {
		slog.Error("failed to reload post", "error", err, "id", existing.ID)
		WriteInternalError(w, "Failed to update post")
		return
	}

	WriteSuccess(w, post, nil)
}

// DeletePost handles DELETE /api/posts/{id}. Requires admin.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := requireEntityByID(w, r, "post", func(id int64) (model.Post, error) {
		return h.queries.GetPostByID(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeletePost(ctx, post.ID); err != nil {
		slog.Error("failed to delete post", "error", err, "id", post.ID)
		WriteInternalError(w, "Failed to delete post")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
