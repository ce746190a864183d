// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/olegiv/blog-go/internal/model"
)

// TokenTTL is the fixed lifetime of an admin bearer token. There is no
// server-side session store: logout is a client-side token discard.
const TokenTTL = 24 * time.Hour

// Token verification errors.
var (
	ErrTokenInvalid = errors.New("invalid or expired token")
	ErrTokenRole    = errors.New("token does not carry the admin role")
)

// Claims are the JWT claims carried by an admin bearer token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer issues and verifies admin bearer tokens. Verification is
// stateless: a token is valid iff its signature matches the secret and
// the current time is before its expiry.
type TokenIssuer struct {
	secret       []byte
	passwordHash string
}

// NewTokenIssuer creates a TokenIssuer from the signing secret and the
// argon2id hash of the admin credential.
func NewTokenIssuer(secret, passwordHash string) *TokenIssuer {
	return &TokenIssuer{
		secret:       []byte(secret),
		passwordHash: passwordHash,
	}
}

// VerifyCredential compares the supplied password against the configured
// admin credential and issues a signed token on match. On mismatch it
// returns ErrInvalidCredential and no token.
func (ti *TokenIssuer) VerifyCredential(password string) (string, error) {
	ok, err := CheckPassword(password, ti.passwordHash)
	if err != nil {
		return "", fmt.Errorf("checking credential: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredential
	}
	return ti.issue(time.Now())
}

// issue signs a new admin token valid for TokenTTL from now.
func (ti *TokenIssuer) issue(now time.Time) (string, error) {
	claims := Claims{
		Role: model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token string. It returns the
// claims if the signature and expiry check out and the token carries
// the admin role.
func (ti *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Role != model.RoleAdmin {
		return nil, ErrTokenRole
	}
	return claims, nil
}
