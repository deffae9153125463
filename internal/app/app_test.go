package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"lyrics-corpus/internal/config"
	"lyrics-corpus/internal/corpus"
	"lyrics-corpus/internal/pipeline"
	"lyrics-corpus/pkg/retry"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.App.OutputPath = filepath.Join(t.TempDir(), "assets", "songs.json")
	cfg.App.SongDelay = 0
	cfg.App.LogLevel = "error"
	cfg.Netease.BaseURL = baseURL
	cfg.Netease.Timeout = time.Second
	cfg.Retry = retry.Policy{MaxAttempts: 2, Delay: time.Millisecond}
	cfg.Songs = []pipeline.SongRequest{
		{Order: "1", Name: "野孩子", Artist: "杨千嬅"},
		{Order: "2", Name: "勇", Artist: "杨千嬅"},
	}
	return cfg
}

func TestRunWritesCorpus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/search/get/web":
			if r.URL.Query().Get("s") == `杨千嬅 "野孩子"` {
				w.Write([]byte(`{"code":200,"result":{"songs":[{"id":100,"name":"野孩子","artists":[{"name":"杨千嬅"}]}]}}`))
				return
			}
			w.Write([]byte(`{"code":200,"result":{"songs":[]}}`))
		case "/api/song/lyric":
			w.Write([]byte(`{"code":200,"lrc":{"lyric":"[00:01.00]第一句\n[00:05.00]第二句"}}`))
		}
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	results, err := corpus.Load(cfg.App.OutputPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID == nil || *results[0].ID != 100 || len(results[0].ParsedLyrics) != 2 {
		t.Errorf("unexpected first result %+v", results[0])
	}
	if results[1].ID != nil || len(results[1].ParsedLyrics) != 0 {
		t.Errorf("expected second song unresolved, got %+v", results[1])
	}
}

func TestRunNoLyrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	err = a.Run(context.Background())
	if !errors.Is(err, ErrNoLyrics) {
		t.Fatalf("expected ErrNoLyrics, got %v", err)
	}

	// 全部失败时仍然写出结果
	results, err := corpus.Load(cfg.App.OutputPath)
	if err != nil || len(results) != 2 {
		t.Errorf("expected corpus with 2 empty results, got %d (%v)", len(results), err)
	}
}

func TestRunCancelledSavesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"result":{"songs":[]}}`))
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := corpus.Load(cfg.App.OutputPath); err == nil {
		t.Error("expected no corpus file after cancellation")
	}
}
