package pipeline

import (
	"context"
	"fmt"
	"time"

	"lyrics-corpus/internal/lyrics"
	"lyrics-corpus/pkg/music"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"
)

// DefaultSongDelay 相邻两首歌之间的等待时间
const DefaultSongDelay = 3 * time.Second

// Driver 按顺序（或有限并发）处理歌单
type Driver struct {
	finder  IdentifierFinder
	fetcher LyricFetcher

	songDelay time.Duration
	workers   int

	// sleep 可在测试中替换
	sleep func(ctx context.Context, d time.Duration) error
}

// Option 配置 Driver
type Option func(*Driver)

// WithSongDelay 设置歌曲间隔
func WithSongDelay(d time.Duration) Option {
	return func(dr *Driver) { dr.songDelay = d }
}

// WithWorkers 设置并发数，1 为严格顺序执行
func WithWorkers(n int) Option {
	return func(dr *Driver) {
		if n > 0 {
			dr.workers = n
		}
	}
}

// NewDriver 创建 Driver
func NewDriver(finder IdentifierFinder, fetcher LyricFetcher, opts ...Option) *Driver {
	d := &Driver{
		finder:    finder,
		fetcher:   fetcher,
		songDelay: DefaultSongDelay,
		workers:   1,
		sleep:     sleepCtx,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run 处理所有歌曲，结果顺序与输入一致。
// 单首歌的失败不会中断运行；只有 ctx 被取消时返回错误。
func (d *Driver) Run(ctx context.Context, songs []SongRequest) ([]SongResult, error) {
	log.Info().
		Int("songs", len(songs)).
		Int("workers", d.workers).
		Dur("song_delay", d.songDelay).
		Msg("Starting lyric pipeline")

	if d.workers > 1 {
		return d.runConcurrent(ctx, songs)
	}
	return d.runSequential(ctx, songs)
}

func (d *Driver) runSequential(ctx context.Context, songs []SongRequest) ([]SongResult, error) {
	results := make([]SongResult, 0, len(songs))
	for i, song := range songs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline cancelled before song %d: %w", i+1, err)
		}

		log.Info().Msgf("[%d/%d] Processing %s", i+1, len(songs), song.Name)
		results = append(results, d.Process(ctx, song))

		if i < len(songs)-1 && d.songDelay > 0 {
			log.Debug().Dur("delay", d.songDelay).Msg("Waiting before next song")
			if err := d.sleep(ctx, d.songDelay); err != nil {
				return nil, fmt.Errorf("pipeline cancelled after song %d: %w", i+1, err)
			}
		}
	}
	// 最后一首歌处理中被取消时，结果不完整
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline cancelled: %w", err)
	}
	return results, nil
}

// runConcurrent 每个 worker 只写自己下标的结果；共享限速器保证整体请求节奏
func (d *Driver) runConcurrent(ctx context.Context, songs []SongRequest) ([]SongResult, error) {
	limit := rate.Inf
	if d.songDelay > 0 {
		limit = rate.Every(d.songDelay)
	}
	limiter := rate.NewLimiter(limit, 1)

	results := make([]SongResult, len(songs))
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(d.workers)
	for i, song := range songs {
		i, song := i, song
		p.Go(func(ctx context.Context) error {
			if err := limiter.Wait(ctx); err != nil {
				return fmt.Errorf("song %d: %w", i+1, err)
			}
			log.Info().Msgf("[%d/%d] Processing %s", i+1, len(songs), song.Name)
			results[i] = d.Process(ctx, song)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("pipeline cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline cancelled: %w", err)
	}
	return results, nil
}

// Process 运行单首歌的状态机直到 DONE。内部 panic 会被恢复，歌曲按无结果记录。
func (d *Driver) Process(ctx context.Context, song SongRequest) (result SongResult) {
	logger := log.With().
		Str("order", song.Order).
		Str("name", song.Name).
		Str("artist", song.Artist).
		Logger()
	ctx = logger.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("Song processing failed")
			result = emptyResult(song)
		}
	}()

	run := &songRun{driver: d, song: song, state: StatePending}
	for run.state != StateDone {
		run.step(ctx)
	}

	res := run.result()
	logger.Info().
		Bool("has_id", res.ID != nil).
		Int("lines", len(res.ParsedLyrics)).
		Msg("Song done")
	return res
}

// songRun 一首歌的处理状态
type songRun struct {
	driver *Driver
	song   SongRequest
	state  State

	id     int64
	doc    *music.LyricDocument
	parsed []string
}

func (r *songRun) step(ctx context.Context) {
	switch r.state {
	case StatePending:
		if r.song.NeteaseID != 0 {
			r.id = r.song.NeteaseID
			r.transition(ctx, StateFoundID)
			return
		}
		r.transition(ctx, StateSearching)

	case StateSearching:
		id, ok := r.driver.finder.FindIdentifier(ctx, r.song.Name, r.song.Artist)
		if !ok {
			r.transition(ctx, StateNoID)
			return
		}
		r.id = id
		r.transition(ctx, StateFoundID)

	case StateFoundID:
		r.transition(ctx, StateFetching)

	case StateFetching:
		doc, ok := r.driver.fetcher.FetchLyrics(ctx, r.id)
		if !ok {
			r.transition(ctx, StateNoLyrics)
			return
		}
		r.doc = doc
		r.parsed = lyrics.Normalize(doc.Lrc)
		r.transition(ctx, StateHasLyrics)

	case StateNoID, StateNoLyrics, StateHasLyrics:
		r.transition(ctx, StateDone)

	default:
		panic(fmt.Sprintf("unknown song state %q", r.state))
	}
}

func (r *songRun) transition(ctx context.Context, next State) {
	zerolog.Ctx(ctx).Debug().
		Str("from", string(r.state)).
		Str("to", string(next)).
		Int64("song_id", r.id).
		Msg("State transition")
	r.state = next
}

func (r *songRun) result() SongResult {
	res := emptyResult(r.song)
	if r.id == 0 {
		return res
	}
	id := r.id
	res.ID = &id
	if r.doc == nil {
		return res
	}
	res.Lyrics = r.doc
	res.ParsedLyrics = r.parsed
	return res
}

func emptyResult(song SongRequest) SongResult {
	return SongResult{
		Order:        song.Order,
		Name:         song.Name,
		Artist:       song.Artist,
		ParsedLyrics: []string{},
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
