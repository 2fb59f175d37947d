package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sandeepkv93/catalog-api/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "app.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	m := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: m.Addr()})

	cfg := &config.Config{Env: "test", ShutdownTimeout: 2 * time.Second}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }),
		ReadHeaderTimeout: time.Second,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, logger, srv, nil, db, rdb, nil)
}

func TestNewCopiesShutdownBudgets(t *testing.T) {
	cfg := &config.Config{ShutdownTimeout: 3 * time.Second, ShutdownHTTPDrainTimeout: 2 * time.Second, ShutdownObservabilityTimeout: time.Second}
	a := New(cfg, slog.Default(), &http.Server{}, nil, nil, nil, nil)
	if a.ShutdownTimeout != 3*time.Second || a.ShutdownHTTPDrainTimeout != 2*time.Second || a.ShutdownObservabilityTimeout != time.Second {
		t.Fatalf("unexpected budgets: %+v", a)
	}
}

func TestRunServesUntilContextCancelled(t *testing.T) {
	a := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + a.Server.Addr + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusNoContent {
				t.Fatalf("expected 204, got %d", resp.StatusCode)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected run error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("run did not return after cancel")
	}

	if err := a.Redis.Ping(context.Background()).Err(); err == nil {
		t.Fatal("expected redis client closed after shutdown")
	}
	sqlDB, _ := a.DB.DB()
	if err := sqlDB.Ping(); err == nil {
		t.Fatal("expected database pool closed after shutdown")
	}
}

func TestRunReturnsListenError(t *testing.T) {
	a := newTestApp(t)
	a.Server.Addr = "bad-address"
	a.Redis = nil
	a.DB = nil

	err := a.Run(context.Background())
	if err == nil {
		t.Fatal("expected listen error")
	}
}

func TestOrDefault(t *testing.T) {
	if orDefault(0, time.Second) != time.Second || orDefault(-1, time.Second) != time.Second {
		t.Fatal("expected fallback for non-positive durations")
	}
	if orDefault(2*time.Second, time.Second) != 2*time.Second {
		t.Fatal("expected explicit duration kept")
	}
}
