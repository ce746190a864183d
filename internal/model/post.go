// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including Post, FriendLink, Message, Project, and Song.
package model

import "time"

// RoleAdmin is the role encoded in admin bearer tokens.
const RoleAdmin = "admin"

// Post represents a published blog post. Posts have no draft state:
// creation publishes immediately and edits overwrite in place.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
