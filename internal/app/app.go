package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"lyrics-corpus/internal/cache"
	"lyrics-corpus/internal/config"
	"lyrics-corpus/internal/corpus"
	"lyrics-corpus/internal/pipeline"
	"lyrics-corpus/pkg/music"
	"lyrics-corpus/pkg/netease"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrNoLyrics 所有歌曲都没有拿到歌词
var ErrNoLyrics = errors.New("no lyrics retrieved for any song")

type App struct {
	cfg    *config.Config
	driver *pipeline.Driver
	closer io.Closer
}

// SetupLogger 设置 zerolog 的全局配置
func SetupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Str("run_id", uuid.NewString()).
		Logger()
	zerolog.DefaultContextLogger = &log.Logger
}

func New(cfg *config.Config) (*App, error) {
	SetupLogger(cfg.App.LogLevel)

	client, err := netease.NewClient(cfg.Netease)
	if err != nil {
		return nil, fmt.Errorf("failed to create netease client: %w", err)
	}

	store, closer := newCache(cfg.Redis)

	resolver := music.NewResolver(client, cfg.Retry, store)
	fetcher := music.NewFetcher(client, cfg.Retry, store)

	return &App{
		cfg: cfg,
		driver: pipeline.NewDriver(resolver, fetcher,
			pipeline.WithSongDelay(cfg.App.SongDelay),
			pipeline.WithWorkers(cfg.App.Workers),
		),
		closer: closer,
	}, nil
}

// newCache 配置了 Redis 且能连上时用 Redis，否则退回内存缓存
func newCache(cfg config.RedisConfig) (music.Cache, io.Closer) {
	if cfg.Addr == "" {
		return cache.NewMemoryStore(), nil
	}

	store, err := cache.NewRedisStore(cfg.Addr, cfg.Password, cfg.DB, cfg.TTL)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis unavailable, using in-memory cache")
		return cache.NewMemoryStore(), nil
	}
	log.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("Using Redis cache")
	return store, store
}

// Run 处理整个歌单并一次性写出结果。
// 取消、写文件失败或没有任何歌词时返回错误；部分歌曲失败不算错误。
func (a *App) Run(ctx context.Context) error {
	if a.closer != nil {
		defer a.closer.Close()
	}

	log.Info().Msg("===== Lyrics corpus scraper =====")

	results, err := a.driver.Run(ctx, a.cfg.Songs)
	if err != nil {
		return fmt.Errorf("pipeline aborted, nothing saved: %w", err)
	}

	if err := corpus.Save(a.cfg.App.OutputPath, results); err != nil {
		return err
	}

	summary := corpus.Summarize(results)
	log.Info().
		Int("songs", summary.Songs).
		Int("with_id", summary.WithID).
		Int("with_lyrics", summary.WithLyrics).
		Str("output", a.cfg.App.OutputPath).
		Msg("Finished")

	if summary.Songs > 0 && summary.WithLyrics == 0 {
		return ErrNoLyrics
	}
	return nil
}
