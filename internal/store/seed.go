// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/blog-go/internal/model"
)

// Seed creates initial demo content in an empty database.
// It is a no-op when seeding is disabled or posts already exist.
func Seed(ctx context.Context, queries *Queries, doSeed bool) error {
	if !doSeed {
		return nil
	}

	count, err := queries.CountPosts(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing posts: %w", err)
	}
	if count > 0 {
		slog.Info("content already exists, skipping seed")
		return nil
	}

	now := time.Now()

	if _, err := queries.CreatePost(ctx, CreatePostParams{
		Title:     "Building the Future with React 19",
		Excerpt:   "Exploring the latest concurrent features and the new compiler that's changing how we think about rendering.",
		Date:      "Jan 18, 2026",
		Category:  "Development",
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}

	if _, err := queries.CreateProject(ctx, CreateProjectParams{
		Title:       "EcoTracker",
		Description: "A mobile application for tracking and reducing personal carbon footprint through gamification.",
		Tags:        []string{"React Native", "Firebase", "D3.js"},
		GitHub:      "#",
		Link:        "#",
		Color:       "#00DC82",
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("seeding projects: %w", err)
	}

	if _, err := queries.CreateFriend(ctx, CreateFriendParams{
		Name:        "Alice's Garden",
		URL:         "#",
		Description: "Design & Illustration",
		Avatar:      "A",
		Approved:    true,
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("seeding friend links: %w", err)
	}

	if _, err := queries.CreateMessage(ctx, CreateMessageParams{
		Name:      "Traveler",
		Content:   "Love the fresh design of this blog! Keep it up.",
		Date:      "2 Hours ago",
		CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("seeding messages: %w", err)
	}

	if _, err := queries.CreateSong(ctx, CreateSongParams{
		Title:  "Eco Valley",
		Artist: "Lofi Dreamer",
		URL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
		Lyrics: []model.LyricLine{
			{Time: 0, Text: "Welcome to the green valley..."},
			{Time: 5, Text: "The wind whispers through the leaves."},
		},
		CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("seeding songs: %w", err)
	}

	slog.Info("seeded demo content")
	return nil
}
