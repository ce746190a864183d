// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/olegiv/blog-go/internal/model"
	"github.com/olegiv/blog-go/internal/store"
)

// FriendRequest is the request body for friend link application and
// admin creation.
type FriendRequest struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

// validate checks required fields and URL shape.
func (req *FriendRequest) validate() map[string]string {
	errs := make(map[string]string)
	if req.Name == "" {
		errs["name"] = "Name is required"
	}
	if req.URL == "" {
		errs["url"] = "URL is required"
	} else if req.URL != "#" {
		if u, err := url.Parse(req.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs["url"] = "URL must be http or https"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ListFriends handles GET /api/friends. Public listing: approved links only.
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.queries.ListApprovedFriends(r.Context())
	if err != nil {
		slog.Error("failed to list friend links", "error", err)
		WriteInternalError(w, "Failed to list friend links")
		return
	}
	if friends == nil {
		friends = []model.FriendLink{}
	}
	WriteSuccess(w, friends, nil)
}

// ListPendingFriends handles GET /api/friends/pending. Requires admin.
func (h *Handler) ListPendingFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.queries.ListPendingFriends(r.Context())
	if err != nil {
		slog.Error("failed to list pending friend links", "error", err)
		WriteInternalError(w, "Failed to list pending friend links")
		return
	}
	if friends == nil {
		friends = []model.FriendLink{}
	}
	WriteSuccess(w, friends, nil)
}

// ApplyFriend handles POST /api/friends/apply. Public: the link enters
// the moderation queue unapproved and stays out of the public listing
// until an admin approves it.
func (h *Handler) ApplyFriend(w http.ResponseWriter, r *http.Request) {
	h.createFriend(w, r, false)
}

// CreateFriend handles POST /api/friends. Requires admin; the link is
// approved immediately.
func (h *Handler) CreateFriend(w http.ResponseWriter, r *http.Request) {
	h.createFriend(w, r, true)
}

func (h *Handler) createFriend(w http.ResponseWriter, r *http.Request, approved bool) {
	var req FriendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.validate(); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	friend, err := h.queries.CreateFriend(r.Context(), store.CreateFriendParams{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Avatar:      req.Avatar,
		Approved:    approved,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("failed to create friend link", "error", err)
		WriteInternalError(w, "Failed to create friend link")
		return
	}

	WriteCreated(w, friend)
}

// ApproveFriend handles PUT /api/friends/{id}/approve. Requires admin.
// Approving an already-approved link is a no-op success.
func (h *Handler) ApproveFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	friend, ok := requireEntityByID(w, r, "friend link", func(id int64) (model.FriendLink, error) {
		return h.queries.GetFriendByID(ctx, id)
	})
	if !ok {
		return
	}

	if friend.IsPending() {
		if err := h.queries.ApproveFriend(ctx, friend.ID); err != nil {
			slog.Error("failed to approve friend link", "error", err, "id", friend.ID)
			WriteInternalError(w, "Failed to approve friend link")
			return
		}
		friend.Approved = true
	}

	WriteSuccess(w, friend, nil)
}

// DeleteFriend handles DELETE /api/friends/{id}. Requires admin.
// Works on both pending and approved links.
func (h *Handler) DeleteFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	friend, ok := requireEntityByID(w, r, "friend link", func(id int64) (model.FriendLink, error) {
		return h.queries.GetFriendByID(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteFriend(ctx, friend.ID); err != nil {
		slog.Error("failed to delete friend link", "error", err, "id", friend.ID)
		WriteInternalError(w, "Failed to delete friend link")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
