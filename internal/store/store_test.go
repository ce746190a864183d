// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/olegiv/blog-go/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	// Create temp file for test database
	f, err := os.CreateTemp("", "blog-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	// Open database
	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	// Run migrations
	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	// Return cleanup function
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestCreatePost(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	post, err := q.CreatePost(ctx, CreatePostParams{
		Title:     "Test Post",
		Excerpt:   "A short excerpt",
		Content:   "<p>Full content</p>",
		Date:      "2026-01-15",
		Category:  "tech",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if post.ID == 0 {
		t.Error("post.ID should not be 0")
	}
	if post.Title != "Test Post" {
		t.Errorf("Title = %q, want %q", post.Title, "Test Post")
	}
	if post.Category != "tech" {
		t.Errorf("Category = %q, want %q", post.Category, "tech")
	}
}

func TestGetPostByID(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	created, err := q.CreatePost(ctx, CreatePostParams{
		Title:     "Lookup",
		Date:      "2026-01-15",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	got, err := q.GetPostByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPostByID: %v", err)
	}
	if got.Title != "Lookup" {
		t.Errorf("Title = %q, want %q", got.Title, "Lookup")
	}

	_, err = q.GetPostByID(ctx, 9999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetPostByID(9999) err = %v, want sql.ErrNoRows", err)
	}
}

func TestListPostsOrderAndPagination(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	base := time.Now()
	for i, title := range []string{"oldest", "middle", "newest"} {
		_, err := q.CreatePost(ctx, CreatePostParams{
			Title:     title,
			Date:      "2026-01-15",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("CreatePost(%s): %v", title, err)
		}
	}

	posts, err := q.ListPosts(ctx, ListPostsParams{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].Title != "newest" || posts[1].Title != "middle" {
		t.Errorf("order = [%s %s], want [newest middle]", posts[0].Title, posts[1].Title)
	}

	posts, err = q.ListPosts(ctx, ListPostsParams{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("ListPosts offset: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "oldest" {
		t.Errorf("second page = %v, want [oldest]", posts)
	}

	total, err := q.CountPosts(ctx)
	if err != nil {
		t.Fatalf("CountPosts: %v", err)
	}
	if total != 3 {
		t.Errorf("CountPosts = %d, want 3", total)
	}
}

func TestUpdatePost(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	created, err := q.CreatePost(ctx, CreatePostParams{
		Title:     "Before",
		Excerpt:   "old excerpt",
		Date:      "2026-01-15",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	err = q.UpdatePost(ctx, UpdatePostParams{
		ID:        created.ID,
		Title:     "After",
		Excerpt:   "new excerpt",
		Content:   "<p>v2</p>",
		Date:      "2026-01-16",
		Category:  "updates",
		UpdatedAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	got, err := q.GetPostByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPostByID: %v", err)
	}
	if got.Title != "After" || got.Excerpt != "new excerpt" || got.Category != "updates" {
		t.Errorf("post not updated: %+v", got)
	}
}

func TestDeletePost(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	created, err := q.CreatePost(ctx, CreatePostParams{
		Title:     "Doomed",
		Date:      "2026-01-15",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if err := q.DeletePost(ctx, created.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	_, err = q.GetPostByID(ctx, created.ID)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestFriendModeration(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	pending, err := q.CreateFriend(ctx, CreateFriendParams{
		Name:      "Applicant",
		URL:       "https://applicant.example",
		Approved:  false,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateFriend: %v", err)
	}
	if !pending.IsPending() {
		t.Error("new application should be pending")
	}

	_, err = q.CreateFriend(ctx, CreateFriendParams{
		Name:      "Admin Pick",
		URL:       "https://pick.example",
		Approved:  true,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateFriend: %v", err)
	}

	approved, err := q.ListApprovedFriends(ctx)
	if err != nil {
		t.Fatalf("ListApprovedFriends: %v", err)
	}
	if len(approved) != 1 || approved[0].Name != "Admin Pick" {
		t.Errorf("approved = %v, want [Admin Pick]", approved)
	}

	queue, err := q.ListPendingFriends(ctx)
	if err != nil {
		t.Fatalf("ListPendingFriends: %v", err)
	}
	if len(queue) != 1 || queue[0].Name != "Applicant" {
		t.Errorf("pending = %v, want [Applicant]", queue)
	}

	if err := q.ApproveFriend(ctx, pending.ID); err != nil {
		t.Fatalf("ApproveFriend: %v", err)
	}

	approved, err = q.ListApprovedFriends(ctx)
	if err != nil {
		t.Fatalf("ListApprovedFriends: %v", err)
	}
	if len(approved) != 2 {
		t.Errorf("got %d approved, want 2", len(approved))
	}

	queue, err = q.ListPendingFriends(ctx)
	if err != nil {
		t.Fatalf("ListPendingFriends: %v", err)
	}
	if len(queue) != 0 {
		t.Errorf("got %d pending, want 0", len(queue))
	}

	if err := q.DeleteFriend(ctx, pending.ID); err != nil {
		t.Fatalf("DeleteFriend: %v", err)
	}
	_, err = q.GetFriendByID(ctx, pending.ID)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestMessages(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	base := time.Now()
	first, err := q.CreateMessage(ctx, CreateMessageParams{
		Name:      "Alice",
		Content:   "hello",
		Date:      "3:04 PM ago",
		CreatedAt: base,
	})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	_, err = q.CreateMessage(ctx, CreateMessageParams{
		Name:      "Bob",
		Content:   "hi there",
		Date:      "3:05 PM ago",
		CreatedAt: base.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	messages, err := q.ListMessages(ctx, ListMessagesParams{Limit: 10, Offset: 0})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Name != "Bob" {
		t.Errorf("newest first: got %q, want Bob", messages[0].Name)
	}

	total, err := q.CountMessages(ctx)
	if err != nil {
		t.Fatalf("CountMessages: %v", err)
	}
	if total != 2 {
		t.Errorf("CountMessages = %d, want 2", total)
	}

	if err := q.DeleteMessage(ctx, first.ID); err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}
	_, err = q.GetMessageByID(ctx, first.ID)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestProjectTagsRoundTrip(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	created, err := q.CreateProject(ctx, CreateProjectParams{
		Title:     "Tagged",
		Tags:      []string{"go", "sqlite", "chi"},
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if !reflect.DeepEqual(created.Tags, []string{"go", "sqlite", "chi"}) {
		t.Errorf("Tags = %v", created.Tags)
	}

	_, err = q.CreateProject(ctx, CreateProjectParams{
		Title:     "Untagged",
		CreatedAt: time.Now().Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	projects, err := q.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(projects))
	}
	// Newest first; the untagged project exposes an empty slice
	if !reflect.DeepEqual(projects[0].Tags, []string{}) {
		t.Errorf("untagged Tags = %v, want []", projects[0].Tags)
	}
	if !reflect.DeepEqual(projects[1].Tags, []string{"go", "sqlite", "chi"}) {
		t.Errorf("tagged Tags = %v", projects[1].Tags)
	}
}

func TestSongLyricsRoundTrip(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	lyrics := []model.LyricLine{
		{Time: 0, Text: "line one"},
		{Time: 3.5, Text: "line two"},
	}
	created, err := q.CreateSong(ctx, CreateSongParams{
		Title:     "With Lyrics",
		Artist:    "Tester",
		URL:       "https://cdn.example/song.mp3",
		Lyrics:    lyrics,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateSong: %v", err)
	}
	if !reflect.DeepEqual(created.Lyrics, lyrics) {
		t.Errorf("Lyrics = %v, want %v", created.Lyrics, lyrics)
	}

	songs, err := q.ListSongs(ctx)
	if err != nil {
		t.Fatalf("ListSongs: %v", err)
	}
	if len(songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(songs))
	}
	if !reflect.DeepEqual(songs[0].Lyrics, lyrics) {
		t.Errorf("listed Lyrics = %v, want %v", songs[0].Lyrics, lyrics)
	}
}

func TestSongBadLyricsRowDoesNotBreakListing(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	// Corrupt lyrics bypass the typed API on purpose
	_, err := db.ExecContext(ctx,
		"INSERT INTO songs (title, artist, url, lyrics, created_at) VALUES (?, ?, ?, ?, ?)",
		"Corrupt", "", "https://cdn.example/c.mp3", "{not json", time.Now())
	if err != nil {
		t.Fatalf("inserting corrupt row: %v", err)
	}

	songs, err := q.ListSongs(ctx)
	if err != nil {
		t.Fatalf("ListSongs: %v", err)
	}
	if len(songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(songs))
	}
	if len(songs[0].Lyrics) != 0 {
		t.Errorf("corrupt lyrics should decode to empty slice, got %v", songs[0].Lyrics)
	}
}

func TestEvents(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	_, err := q.CreateEvent(ctx, CreateEventParams{
		Level:     model.EventLevelWarning,
		Category:  model.EventCategoryAuth,
		Message:   "failed admin login attempt",
		Metadata:  `{"ip":"203.0.113.9"}`,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Category != model.EventCategoryAuth {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryAuth)
	}
}
