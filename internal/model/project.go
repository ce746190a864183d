// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// Project represents a portfolio project card. Tags are stored as a
// comma-separated string and exposed as a slice.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	GitHub      string    `json:"github"`
	Link        string    `json:"link"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// JoinTags serializes a tag slice to the CSV form used in storage.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SplitTags parses the stored CSV form back into a slice.
// Empty input yields an empty slice rather than [""].
func SplitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
