// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vitrina-app/vitrina/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func jwtAuthenticator() *Authenticator {
	return NewAuthenticator(&config.SecurityConfig{
		AuthMode:  "jwt",
		JWTSecret: testSecret,
	})
}

// authProbe runs the middleware and reports the status plus the user id
// the wrapped handler observed.
func authProbe(a *Authenticator, authorization string) (int, string) {
	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	a.Middleware(next).ServeHTTP(rec, req)
	return rec.Code, gotUserID
}

// TestAuthenticator_ValidToken verifies a signed token passes and its
// subject becomes the user id.
func TestAuthenticator_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	status, userID := authProbe(jwtAuthenticator(), "Bearer "+token)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if userID != "user-7" {
		t.Errorf("user id = %q, want user-7", userID)
	}
}

// TestAuthenticator_Rejections covers the 401 paths with one generic
// response body for all of them.
func TestAuthenticator_Rejections(t *testing.T) {
	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-7",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "another-secret-another-secret-xx", jwt.MapClaims{
		"sub": "user-7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	noSubject := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + wrongKey},
		{"missing subject", "Bearer " + noSubject},
	}

	a := jwtAuthenticator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, userID := authProbe(a, tt.authorization)
			if status != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", status)
			}
			if userID != "" {
				t.Errorf("user id leaked: %q", userID)
			}
		})
	}
}

// TestAuthenticator_AlgorithmConfusion verifies a token signed with none
// is rejected.
func TestAuthenticator_AlgorithmConfusion(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "attacker",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build none token: %v", err)
	}

	status, _ := authProbe(jwtAuthenticator(), "Bearer "+unsigned)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for alg=none", status)
	}
}

// TestAuthenticator_NoneMode verifies auth_mode none passes everything
// through anonymous.
func TestAuthenticator_NoneMode(t *testing.T) {
	a := NewAuthenticator(&config.SecurityConfig{AuthMode: "none"})

	status, userID := authProbe(a, "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if userID != "" {
		t.Errorf("anonymous request got user id %q", userID)
	}
}

// TestExtractBearerToken covers header parsing edge cases.
func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"plain bearer", "Bearer abc", "abc"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"trailing space", "Bearer  abc", "abc"},
		{"wrong scheme", "Token abc", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("extractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
