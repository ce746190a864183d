// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// FriendLink represents a moderated directory entry pointing to an
// external site. Visitor applications start unapproved; admin-created
// links are approved immediately.
type FriendLink struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Avatar      string    `json:"avatar"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsPending returns true if the link is awaiting moderation.
func (f *FriendLink) IsPending() bool {
	return !f.Approved
}
