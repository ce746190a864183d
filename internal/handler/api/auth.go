// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/blog-go/internal/auth"
	"github.com/olegiv/blog-go/internal/model"
)

// VerifyCredentialRequest is the request body for POST /api/auth/verify.
type VerifyCredentialRequest struct {
	Password string `json:"password"`
}

// VerifyCredentialResponse keeps the SPA's original login contract.
type VerifyCredentialResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

// VerifyCredential handles POST /api/auth/verify. On a matching
// credential it issues a 24-hour admin bearer token; on mismatch it
// returns 401 without touching the store.
func (h *Handler) VerifyCredential(w http.ResponseWriter, r *http.Request) {
	var req VerifyCredentialRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Password == "" {
		WriteJSON(w, http.StatusBadRequest, VerifyCredentialResponse{
			Success: false,
			Error:   "Password is required",
		})
		return
	}

	token, err := h.issuer.VerifyCredential(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredential) {
			slog.Warn("failed admin login attempt", "category", model.EventCategoryAuth)
			WriteJSON(w, http.StatusUnauthorized, VerifyCredentialResponse{
				Success: false,
				Error:   "Invalid credential",
			})
			return
		}
		slog.Error("credential verification failed", "error", err)
		WriteJSON(w, http.StatusInternalServerError, VerifyCredentialResponse{
			Success: false,
			Error:   "Verification failed",
		})
		return
	}

	WriteJSON(w, http.StatusOK, VerifyCredentialResponse{
		Success: true,
		Token:   token,
	})
}
