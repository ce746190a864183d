// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/blog-go/internal/handler"
	"github.com/olegiv/blog-go/internal/model"
	"github.com/olegiv/blog-go/internal/store"
)

// CreateMessageRequest is the request body for posting to the message board.
type CreateMessageRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ListMessages handles GET /api/messages. Public; newest first.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := handler.ParsePageParam(r)
	perPage := handler.ParsePerPageParam(r, 20, 100)
	offset := (page - 1) * perPage

	messages, err := h.queries.ListMessages(ctx, store.ListMessagesParams{
		Limit:  int64(perPage),
		Offset: int64(offset),
	})
	if err != nil {
		slog.Error("failed to list messages", "error", err)
		WriteInternalError(w, "Failed to list messages")
		return
	}

	total, err := h.queries.CountMessages(ctx)
	if err != nil {
		slog.Error("failed to count messages", "error", err)
		WriteInternalError(w, "Failed to list messages")
		return
	}

	if messages == nil {
		messages = []model.Message{}
	}

	WriteSuccess(w, messages, &Meta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   totalPages(total, perPage),
	})
}

// CreateMessage handles POST /api/messages. Public and append-only.
// The display date is assigned server-side, as the original board did.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	validationErrors := make(map[string]string)
	if req.Name == "" {
		validationErrors["name"] = "Name is required"
	}
	if req.Content == "" {
		validationErrors["content"] = "Content is required"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	now := time.Now()
	message, err := h.queries.CreateMessage(r.Context(), store.CreateMessageParams{
		Name:      req.Name,
		Content:   req.Content,
		Date:      messageDisplayDate(now),
		CreatedAt: now,
	})
	if err != nil {
		slog.Error("failed to create message", "error", err)
		WriteInternalError(w, "Failed to post message")
		return
	}

	WriteCreated(w, message)
}

// DeleteMessage handles DELETE /api/messages/{id}. Requires admin.
// There is no update operation for messages.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	message, ok := requireEntityByID(w, r, "message", func(id int64) (model.Message, error) {
		return h.queries.GetMessageByID(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteMessage(ctx, message.ID); err != nil {
		slog.Error("failed to delete message", "error", err, "id", message.ID)
		WriteInternalError(w, "Failed to delete message")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// messageDisplayDate formats the cosmetic relative-style date string the
// SPA renders next to each message, e.g. "3:04 PM ago".
func messageDisplayDate(t time.Time) string {
	return fmt.Sprintf("%s ago", t.Format("3:04 PM"))
}
