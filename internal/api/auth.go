// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vitrina-app/vitrina/internal/config"
	"github.com/vitrina-app/vitrina/internal/logging"
)

// Authentication errors. Responses stay generic on purpose; the precise
// failure reason only goes to the log.
var (
	ErrNoCredentials      = errors.New("no credentials provided")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExpiredCredentials = errors.New("expired credentials")
)

type authContextKey string

const userIDKey authContextKey = "user_id"

// UserIDFromContext returns the authenticated user id, or empty when the
// request is unauthenticated (auth_mode none).
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// Authenticator validates bearer tokens on feed endpoints. In jwt mode
// the subject claim becomes the personalization user id; in none mode
// all requests pass through anonymous.
type Authenticator struct {
	mode   string
	secret []byte
}

// NewAuthenticator creates an authenticator from security configuration.
func NewAuthenticator(cfg *config.SecurityConfig) *Authenticator {
	return &Authenticator{
		mode:   cfg.AuthMode,
		secret: []byte(cfg.JWTSecret),
	}
}

// Middleware enforces authentication on the wrapped routes.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.mode == "none" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := a.authenticate(r)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("authentication failed")
			respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate validates the bearer token and returns its subject.
func (a *Authenticator) authenticate(r *http.Request) (string, error) {
	tokenStr := extractBearerToken(r)
	if tokenStr == "" {
		return "", ErrNoCredentials
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredCredentials
		}
		return "", ErrInvalidCredentials
	}
	if !token.Valid {
		return "", ErrInvalidCredentials
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidCredentials
	}
	return subject, nil
}

// extractBearerToken extracts the bearer token from the Authorization
// header.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
