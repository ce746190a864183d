// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// LyricLine is a single timed lyric entry for the music player.
type LyricLine struct {
	Time float64 `json:"time"`
	Text string  `json:"text"`
}

// Song represents a music player track. Lyrics are stored as a JSON
// string and exposed as a parsed slice.
type Song struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	Artist    string      `json:"artist"`
	URL       string      `json:"url"`
	Lyrics    []LyricLine `json:"lyrics"`
	CreatedAt time.Time   `json:"created_at"`
}

// MarshalLyrics serializes lyric lines to the JSON form used in storage.
func MarshalLyrics(lyrics []LyricLine) (string, error) {
	if lyrics == nil {
		lyrics = []LyricLine{}
	}
	b, err := json.Marshal(lyrics)
	if err != nil {
		return "", fmt.Errorf("marshaling lyrics: %w", err)
	}
	return string(b), nil
}

// UnmarshalLyrics parses the stored JSON form back into lyric lines.
// Invalid or empty input yields an empty slice so a single bad row
// does not break the whole song listing.
func UnmarshalLyrics(s string) []LyricLine {
	if s == "" {
		return []LyricLine{}
	}
	var lyrics []LyricLine
	if err := json.Unmarshal([]byte(s), &lyrics); err != nil {
		return []LyricLine{}
	}
	return lyrics
}
