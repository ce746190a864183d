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

// CreateSongRequest is the request body for adding a music player track.
type CreateSongRequest struct {
	Title  string            `json:"title"`
	Artist string            `json:"artist"`
	URL    string            `json:"url"`
	Lyrics []model.LyricLine `json:"lyrics"`
}

// ListSongs handles GET /api/songs. Public.
func (h *Handler) ListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.queries.ListSongs(r.Context())
	if err != nil {
		slog.Error("failed to list songs", "error", err)
		WriteInternalError(w, "Failed to list songs")
		return
	}
	if songs == nil {
		songs = []model.Song{}
	}
	WriteSuccess(w, songs, nil)
}

// CreateSong handles POST /api/songs. Requires admin.
func (h *Handler) CreateSong(w http.ResponseWriter, r *http.Request) {
	var req CreateSongRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	validationErrors := make(map[string]string)
	if req.Title == "" {
		validationErrors["title"] = "Title is required"
	}
	if req.URL == "" {
		validationErrors["url"] = "URL is required"
	} else if u, err := url.Parse(req.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		validationErrors["url"] = "URL must be http or https"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	song, err := h.queries.CreateSong(r.Context(), store.CreateSongParams{
		Title:     req.Title,
		Artist:    req.Artist,
		URL:       req.URL,
		Lyrics:    req.Lyrics,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to create song", "error", err)
		WriteInternalError(w, "Failed to add song")
		return
	}

	WriteCreated(w, song)
}
