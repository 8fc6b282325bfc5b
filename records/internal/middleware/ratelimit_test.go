package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) Allow(ctx context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

func (f *fakeLimiter) Close() error { return nil }

func TestRateLimitAllows(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	called := false
	handler := RateLimit(limiter, "login")(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if !called {
		t.Fatal("handler not called")
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "login:10.0.0.1" {
		t.Errorf("limiter keys = %v", limiter.keys)
	}
}

func TestRateLimitRejects(t *testing.T) {
	limiter := &fakeLimiter{allowed: false}
	called := false
	handler := RateLimit(limiter, "login")(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/login", nil))

	if called {
		t.Fatal("handler should not be called")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("redis down")}
	called := false
	handler := RateLimit(limiter, "login")(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/login", nil))

	if !called {
		t.Fatal("handler should be called when the limiter errors")
	}
}
