package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	t.Setenv("NETEASE_COOKIE", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if cfg.App.OutputPath != DefaultOutputPath || cfg.App.Workers != 1 || cfg.App.SongDelay != 3*time.Second {
		t.Errorf("unexpected app defaults %+v", cfg.App)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.Delay != 3*time.Second {
		t.Errorf("unexpected retry defaults %+v", cfg.Retry)
	}
	if cfg.Netease.Timeout != 30*time.Second || cfg.Netease.BaseURL != "https://music.163.com" {
		t.Errorf("unexpected netease defaults %+v", cfg.Netease)
	}
	if len(cfg.Songs) != 20 || cfg.Songs[0].Name != "野孩子" || cfg.Songs[0].Order != "1" || cfg.Songs[19].Order != "20" {
		t.Errorf("unexpected default songs %+v", cfg.Songs)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis should be disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.Redis.TTL != DefaultRedisTTL {
		t.Errorf("expected finite default redis ttl, got %v", cfg.Redis.TTL)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	t.Setenv("NETEASE_COOKIE", "MUSIC_U=env")
	t.Setenv("REDIS_ADDR", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[app]
output_path = "out/songs.json"
log_level = "debug"
workers = 2
song_delay = "500ms"

[netease]
base_url = "http://127.0.0.1:9000"
cookie = "MUSIC_U=file"
timeout = "not-a-duration"
proxy = "socks5://127.0.0.1:10808"

[retry]
max_attempts = 5
delay = "1s"

[redis]
addr = "localhost:6379"
db = 2
ttl = "24h"

[[songs]]
order = "1"
name = "处处吻"
artist = "杨千嬅"

[[songs]]
order = "2"
name = "遗物"
artist = "杨千嬅"
netease_id = 12345
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if cfg.App.OutputPath != "out/songs.json" || cfg.App.LogLevel != "debug" || cfg.App.Workers != 2 || cfg.App.SongDelay != 500*time.Millisecond {
		t.Errorf("app overrides not applied: %+v", cfg.App)
	}
	if cfg.Netease.BaseURL != "http://127.0.0.1:9000" || cfg.Netease.Proxy != "socks5://127.0.0.1:10808" {
		t.Errorf("netease overrides not applied: %+v", cfg.Netease)
	}
	// 环境变量优先
	if cfg.Netease.Cookie != "MUSIC_U=env" {
		t.Errorf("expected env cookie, got %q", cfg.Netease.Cookie)
	}
	// 非法时长保留默认值
	if cfg.Netease.Timeout != 30*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.Netease.Timeout)
	}
	if cfg.Retry.MaxAttempts != 5 || cfg.Retry.Delay != time.Second {
		t.Errorf("retry overrides not applied: %+v", cfg.Retry)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 || cfg.Redis.TTL != 24*time.Hour {
		t.Errorf("redis overrides not applied: %+v", cfg.Redis)
	}
	if len(cfg.Songs) != 2 || cfg.Songs[1].NeteaseID != 12345 || cfg.Songs[0].Name != "处处吻" {
		t.Errorf("songs not loaded: %+v", cfg.Songs)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[app\noutput_path = "), 0644)

	if _, err := LoadFile(path); err == nil {
		t.Error("expected decode error")
	}
}
