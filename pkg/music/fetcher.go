package music

import (
	"context"
	"strconv"

	"lyrics-corpus/pkg/retry"

	"github.com/rs/zerolog"
)

// Fetcher 获取并过滤歌词
type Fetcher struct {
	catalog Catalog
	policy  retry.Policy
	cache   Cache
}

// NewFetcher 创建歌词获取器，cache 可以为 nil
func NewFetcher(catalog Catalog, policy retry.Policy, cache Cache) *Fetcher {
	return &Fetcher{catalog: catalog, policy: policy, cache: cache}
}

// FetchLyrics 获取歌曲ID对应的歌词。songID 为 0 表示没有ID，不发请求。
// 过滤后为空的歌词按没有歌词处理。
func (f *Fetcher) FetchLyrics(ctx context.Context, songID int64) (*LyricDocument, bool) {
	if songID == 0 {
		return nil, false
	}
	logger := zerolog.Ctx(ctx)

	raw, ok := f.raw(ctx, songID)
	if !ok {
		return nil, false
	}

	filtered := FilterCredits(raw)
	if filtered == "" {
		logger.Warn().Int64("song_id", songID).Msg("Lyric empty after filtering credits")
		return nil, false
	}
	return &LyricDocument{Lrc: filtered}, true
}

func (f *Fetcher) raw(ctx context.Context, songID int64) (string, bool) {
	logger := zerolog.Ctx(ctx)
	key := "lyric:" + strconv.FormatInt(songID, 10)

	if f.cache != nil {
		value, ok, err := f.cache.Get(ctx, key)
		switch {
		case err != nil:
			logger.Warn().Err(err).Str("key", key).Msg("Lyric cache lookup failed")
		case ok && value != "":
			logger.Info().Int64("song_id", songID).Msg("Lyric cache hit")
			return value, true
		}
	}

	raw, ok := retry.Do(ctx, f.policy, "lyric", func(ctx context.Context, attempt int) (string, error) {
		return f.catalog.GetLyrics(ctx, songID)
	})
	if !ok {
		return "", false
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, key, raw); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Failed to cache lyric")
		}
	}
	return raw, true
}
