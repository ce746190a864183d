// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/olegiv/blog-go/internal/model"
	"github.com/olegiv/blog-go/internal/store"
)

func testEventDB(t *testing.T) *store.Queries {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			category TEXT NOT NULL,
			message TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return store.New(db)
}

func testLogger(t *testing.T) (*slog.Logger, *store.Queries, *bytes.Buffer) {
	t.Helper()
	queries := testEventDB(t)
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewEventLogHandler(inner, queries)), queries, &buf
}

func recentEvents(t *testing.T, queries *store.Queries) []model.Event {
	t.Helper()
	events, err := queries.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	return events
}

func TestWarnForwardedToEventLog(t *testing.T) {
	logger, queries, buf := testLogger(t)

	logger.Warn("failed admin login attempt", "category", model.EventCategoryAuth, "ip", "203.0.113.9")

	events := recentEvents(t, queries)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Level != model.EventLevelWarning {
		t.Errorf("Level = %q, want %q", e.Level, model.EventLevelWarning)
	}
	if e.Category != model.EventCategoryAuth {
		t.Errorf("Category = %q, want %q", e.Category, model.EventCategoryAuth)
	}
	if e.Message != "failed admin login attempt" {
		t.Errorf("Message = %q", e.Message)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(e.Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v", err)
	}
	if meta["ip"] != "203.0.113.9" {
		t.Errorf("metadata ip = %q", meta["ip"])
	}

	// The inner handler still receives the record
	if !bytes.Contains(buf.Bytes(), []byte("failed admin login attempt")) {
		t.Error("record missing from inner handler output")
	}
}

func TestErrorLevelMapped(t *testing.T) {
	logger, queries, _ := testLogger(t)

	logger.Error("server error", "error", "boom")

	events := recentEvents(t, queries)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Level != model.EventLevelError {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelError)
	}
}

func TestInfoNotForwarded(t *testing.T) {
	logger, queries, buf := testLogger(t)

	logger.Info("starting server", "addr", "localhost:3001")

	if events := recentEvents(t, queries); len(events) != 0 {
		t.Errorf("info logged to event table: %d events", len(events))
	}
	if !bytes.Contains(buf.Bytes(), []byte("starting server")) {
		t.Error("info record missing from inner handler output")
	}
}

func TestCategoryInferredFromMessage(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"invalid token presented", model.EventCategoryAuth},
		{"failed to update post", model.EventCategoryContent},
		{"disk almost full", model.EventCategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			logger, queries, _ := testLogger(t)

			logger.Warn(tt.message)

			events := recentEvents(t, queries)
			if len(events) != 1 {
				t.Fatalf("got %d events, want 1", len(events))
			}
			if events[0].Category != tt.want {
				t.Errorf("Category = %q, want %q", events[0].Category, tt.want)
			}
		})
	}
}
