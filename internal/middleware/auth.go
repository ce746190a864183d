// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// rate limiting, CORS, and request handling.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/olegiv/blog-go/internal/auth"
)

// ContextKey is the type for request context keys set by middleware.
type ContextKey string

// ContextKeyAdminClaims is the context key for verified admin token claims.
const ContextKeyAdminClaims ContextKey = "admin_claims"

// APIError represents a JSON error response for the API.
type APIError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message
	apiErr.Error.Details = details

	_ = json.NewEncoder(w).Encode(apiErr)
}

// bearerToken extracts the token from an Authorization header.
// The second return value is the error code when extraction fails.
func bearerToken(r *http.Request) (string, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", "missing_token"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", "missing_token"
	}

	return parts[1], ""
}

// RequireAdmin creates middleware that validates the admin bearer token.
// Authorization failures short-circuit before any store access.
func RequireAdmin(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, errCode := bearerToken(r)
			if errCode != "" {
				WriteAPIError(w, http.StatusUnauthorized, errCode,
					"Missing bearer token. Use: Authorization: Bearer <token>", nil)
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				WriteAPIError(w, http.StatusUnauthorized, "invalid_token",
					"Invalid or expired token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdminClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminClaims retrieves verified admin claims from the request context.
// Returns nil if the request did not pass RequireAdmin.
func GetAdminClaims(r *http.Request) *auth.Claims {
	claims, ok := r.Context().Value(ContextKeyAdminClaims).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
