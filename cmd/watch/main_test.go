package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/market-data-watch/internal/config"
	"github.com/preston-bernstein/market-data-watch/internal/present"
)

// Smoke test to ensure main honors SKIP_SERVER_RUN and does not block test runs.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunRendersFixtureUntilCancelled(t *testing.T) {
	cfg := config.Defaults()
	cfg.PollInterval = 5 * time.Millisecond

	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, out, &bytes.Buffer{}) }()

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "Current") {
		if time.Now().After(deadline) {
			t.Fatalf("expected rendered table, got %q", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	if !strings.Contains(out.String(), present.Title) {
		t.Fatalf("expected title in output")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRunReturnsRenderError(t *testing.T) {
	err := run(context.Background(), config.Defaults(), failingWriter{}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "closed pipe") {
		t.Fatalf("expected render error, got %v", err)
	}
}
