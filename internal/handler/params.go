// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides shared route constants and request parsing
// helpers used by the API handlers.
package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Route path constants.
const (
	RouteHealth         = "/health"
	RouteAuthVerify     = "/auth/verify"
	RoutePosts          = "/posts"
	RoutePostsID        = "/posts/{id}"
	RouteFriends        = "/friends"
	RouteFriendsApply   = "/friends/apply"
	RouteFriendsPending = "/friends/pending"
	RouteFriendsID      = "/friends/{id}"
	RouteFriendsApprove = "/friends/{id}/approve"
	RouteMessages       = "/messages"
	RouteMessagesID     = "/messages/{id}"
	RouteProjects       = "/projects"
	RouteSongs          = "/songs"
)

// ParseIDParam parses the {id} URL parameter as a positive int64.
func ParseIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id parameter: %q", idStr)
	}
	return id, nil
}

// ParsePageParam parses the "page" query parameter, defaulting to 1.
func ParsePageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParsePerPageParam parses the "per_page" query parameter with a
// default and an upper cap.
func ParsePerPageParam(r *http.Request, defaultPerPage, maxPerPage int) int {
	perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil || perPage < 1 {
		return defaultPerPage
	}
	if perPage > maxPerPage {
		return maxPerPage
	}
	return perPage
}
