package music

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"lyrics-corpus/pkg/netease"
	"lyrics-corpus/pkg/retry"
	"lyrics-corpus/pkg/similarity"

	"github.com/rs/zerolog"
)

const (
	// 第一轮：歌手 + 歌名
	primaryLimit     = 5
	primaryThreshold = 0.4

	// 第二轮：只用歌名
	fallbackLimit     = 10
	fallbackThreshold = 0.1
)

// ErrNoMatch 两轮搜索都没有结果
var ErrNoMatch = errors.New("no matching song")

// Resolver 把 (歌名, 歌手) 解析为网易云歌曲ID
type Resolver struct {
	catalog Catalog
	policy  retry.Policy
	cache   Cache
}

// NewResolver 创建解析器，cache 可以为 nil
func NewResolver(catalog Catalog, policy retry.Policy, cache Cache) *Resolver {
	return &Resolver{catalog: catalog, policy: policy, cache: cache}
}

// FindIdentifier 查找歌曲ID。每次尝试都会完整执行两轮搜索，
// 第一轮失败或没有匹配时同一次尝试内继续第二轮，所以一次尝试最多发两个请求，
// 默认 3 次尝试用尽时共 6 个搜索请求，返回 (0, false)。
// 只有通过阈值的结果会写入缓存，兜底取第一条的结果不缓存。
func (r *Resolver) FindIdentifier(ctx context.Context, title, artist string) (int64, bool) {
	logger := zerolog.Ctx(ctx)
	key := searchCacheKey(title, artist)

	if id, ok := r.cachedID(ctx, key); ok {
		logger.Info().Int64("song_id", id).Msg("Song ID cache hit")
		return id, true
	}

	m, ok := retry.Do(ctx, r.policy, "search", func(ctx context.Context, attempt int) (searchMatch, error) {
		return r.resolve(ctx, title, artist)
	})
	if !ok {
		return 0, false
	}
	id := m.id

	if r.cache != nil && !m.positional {
		if err := r.cache.Set(ctx, key, strconv.FormatInt(id, 10)); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Failed to cache song ID")
		}
	}
	return id, true
}

// searchMatch 单次搜索的结果，positional 表示没有候选通过阈值、取了第一条
type searchMatch struct {
	id         int64
	positional bool
}

// resolve 单次尝试的两轮搜索
func (r *Resolver) resolve(ctx context.Context, title, artist string) (searchMatch, error) {
	logger := zerolog.Ctx(ctx)

	query := fmt.Sprintf(`%s "%s"`, artist, title)
	songs, err := r.catalog.Search(ctx, query, primaryLimit)
	if err != nil {
		// 第一轮失败按无结果处理，继续第二轮
		logger.Warn().Err(err).Str("query", query).Msg("Primary search failed")
	}

	if song, ok := lowestID(songs, func(s netease.Song) bool {
		return matchTitleArtist(s, title, artist)
	}); ok {
		logger.Info().
			Int64("song_id", song.ID).
			Str("match_name", song.Name).
			Str("match_artist", primaryArtistName(song)).
			Msg("Found matching song")
		return searchMatch{id: song.ID}, nil
	}

	logger.Info().Msg("No title+artist match, searching by title only")
	songs, err = r.catalog.Search(ctx, title, fallbackLimit)
	if err != nil {
		return searchMatch{}, err
	}
	if len(songs) == 0 {
		return searchMatch{}, fmt.Errorf("%w: %s - %s", ErrNoMatch, title, artist)
	}

	if song, ok := lowestID(songs, func(s netease.Song) bool {
		return matchTitle(s, title)
	}); ok {
		logger.Info().Int64("song_id", song.ID).Str("match_name", song.Name).Msg("Found title-only match")
		return searchMatch{id: song.ID}, nil
	}

	// 弱保证：没有任何结果通过阈值时取第一条
	first := songs[0]
	logger.Warn().
		Int64("song_id", first.ID).
		Str("match_name", first.Name).
		Msg("No title match, using first result")
	return searchMatch{id: first.ID, positional: true}, nil
}

func (r *Resolver) cachedID(ctx context.Context, key string) (int64, bool) {
	if r.cache == nil {
		return 0, false
	}
	value, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Song ID cache lookup failed")
		return 0, false
	}
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func matchTitleArtist(s netease.Song, title, artist string) bool {
	return similarity.Ratio(s.Name, title) >= primaryThreshold &&
		similarity.RatioOf(s.PrimaryArtist(), &artist) >= primaryThreshold
}

func matchTitle(s netease.Song, title string) bool {
	return similarity.Ratio(s.Name, title) >= fallbackThreshold
}

// lowestID 在满足 match 的候选中取ID最小的一首
func lowestID(songs []netease.Song, match func(netease.Song) bool) (netease.Song, bool) {
	var (
		best  netease.Song
		found bool
	)
	for _, s := range songs {
		if !match(s) {
			continue
		}
		if !found || s.ID < best.ID {
			best = s
			found = true
		}
	}
	return best, found
}

func primaryArtistName(s netease.Song) string {
	if a := s.PrimaryArtist(); a != nil {
		return *a
	}
	return ""
}

func searchCacheKey(title, artist string) string {
	return "search:" + artist + "|" + title
}
