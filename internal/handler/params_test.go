// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func requestWithID(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/posts/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		id      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ParseIDParam(requestWithID(tt.id))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIDParam(%q) err = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseIDParam(%q) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=3", 3},
		{"page=0", 1},
		{"page=-2", 1},
		{"page=x", 1},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/posts?"+tt.query, nil)
		if got := ParsePageParam(req); got != tt.want {
			t.Errorf("ParsePageParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestParsePerPageParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 20},
		{"per_page=50", 50},
		{"per_page=500", 100},
		{"per_page=0", 20},
		{"per_page=x", 20},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/posts?"+tt.query, nil)
		if got := ParsePerPageParam(req, 20, 100); got != tt.want {
			t.Errorf("ParsePerPageParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
