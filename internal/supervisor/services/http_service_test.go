// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"
)

// mockServer scripts ListenAndServe behavior and records Shutdown calls.
type mockServer struct {
	mu           sync.Mutex
	serveErr     error
	serveRelease chan struct{}
	shutdownErr  error
	shutdowns    int
}

func (m *mockServer) ListenAndServe() error {
	if m.serveRelease != nil {
		<-m.serveRelease
	}
	return m.serveErr
}

func (m *mockServer) Shutdown(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shutdowns++
	if m.serveRelease != nil {
		close(m.serveRelease)
		m.serveRelease = nil
	}
	return m.shutdownErr
}

func (m *mockServer) shutdownCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shutdowns
}

// TestHTTPServerService_GracefulShutdown verifies cancellation triggers
// Shutdown and Serve returns the context error for suture.
func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	srv := &mockServer{
		serveErr:     http.ErrServerClosed,
		serveRelease: make(chan struct{}),
	}
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if srv.shutdownCount() != 1 {
		t.Errorf("shutdown count = %d, want 1", srv.shutdownCount())
	}
}

// TestHTTPServerService_ServerError verifies a crashing server surfaces
// a wrapped error without calling Shutdown.
func TestHTTPServerService_ServerError(t *testing.T) {
	bindErr := errors.New("listen tcp :8474: address already in use")
	srv := &mockServer{serveErr: bindErr}
	svc := NewHTTPServerService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("expected error from failed server")
	}
	if !errors.Is(err, bindErr) {
		t.Errorf("error %v does not wrap the server error", err)
	}
	if !strings.Contains(err.Error(), "http server failed") {
		t.Errorf("error = %q, want http server failed prefix", err)
	}
	if srv.shutdownCount() != 0 {
		t.Errorf("shutdown count = %d, want 0", srv.shutdownCount())
	}
}

// TestHTTPServerService_ErrServerClosed verifies the expected close
// sentinel is treated as a clean exit.
func TestHTTPServerService_ErrServerClosed(t *testing.T) {
	srv := &mockServer{serveErr: http.ErrServerClosed}
	svc := NewHTTPServerService(srv, time.Second)

	if err := svc.Serve(context.Background()); err != nil {
		t.Errorf("Serve returned %v, want nil for ErrServerClosed", err)
	}
}

// TestHTTPServerService_ShutdownError verifies a failing shutdown is
// reported.
func TestHTTPServerService_ShutdownError(t *testing.T) {
	srv := &mockServer{
		serveErr:     http.ErrServerClosed,
		serveRelease: make(chan struct{}),
		shutdownErr:  errors.New("connections still draining"),
	}
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "shutdown failed") {
			t.Errorf("Serve returned %v, want shutdown failure", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

// TestHTTPServerService_Defaults verifies the timeout floor and name.
func TestHTTPServerService_Defaults(t *testing.T) {
	svc := NewHTTPServerService(&mockServer{}, 0)
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s default", svc.shutdownTimeout)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}
