package music

import (
	"context"

	"lyrics-corpus/pkg/netease"
)

// Catalog 音乐目录接口，由 netease.Client 实现
type Catalog interface {
	// Search 搜索歌曲，返回最多 limit 条候选
	Search(ctx context.Context, query string, limit int) ([]netease.Song, error)

	// GetLyrics 根据歌曲ID获取原始歌词
	GetLyrics(ctx context.Context, songID int64) (string, error)

	// GetProviderName 获取音乐提供商名称
	GetProviderName() string
}

// Cache 可选的键值缓存
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// LyricDocument 过滤后的原始歌词（仍带时间轴）
type LyricDocument struct {
	Lrc string `json:"lrc"`
}

var _ Catalog = (*netease.Client)(nil)
