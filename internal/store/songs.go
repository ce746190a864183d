// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/blog-go/internal/model"
)

const songColumns = "id, title, artist, url, lyrics, created_at"

// CreateSongParams holds the fields for creating a music player track.
type CreateSongParams struct {
	Title     string
	Artist    string
	URL       string
	Lyrics    []model.LyricLine
	CreatedAt time.Time
}

// CreateSong inserts a new song and returns it with its assigned ID.
func (q *Queries) CreateSong(ctx context.Context, arg CreateSongParams) (model.Song, error) {
	lyrics, err := model.MarshalLyrics(arg.Lyrics)
	if err != nil {
		return model.Song{}, err
	}
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO songs (title, artist, url, lyrics, created_at) VALUES (?, ?, ?, ?, ?)",
		arg.Title, arg.Artist, arg.URL, lyrics, arg.CreatedAt)
	if err != nil {
		return model.Song{}, fmt.Errorf("inserting song: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Song{}, fmt.Errorf("resolving song id: %w", err)
	}
	return model.Song{
		ID:        id,
		Title:     arg.Title,
		Artist:    arg.Artist,
		URL:       arg.URL,
		Lyrics:    model.UnmarshalLyrics(lyrics),
		CreatedAt: arg.CreatedAt,
	}, nil
}

// ListSongs returns all songs in insertion order.
func (q *Queries) ListSongs(ctx context.Context) ([]model.Song, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+songColumns+" FROM songs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	defer rows.Close()

	var songs []model.Song
	for rows.Next() {
		var s model.Song
		var lyrics string
		if err := rows.Scan(&s.ID, &s.Title, &s.Artist, &s.URL, &lyrics, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Lyrics = model.UnmarshalLyrics(lyrics)
		songs = append(songs, s)
	}
	return songs, rows.Err()
}
