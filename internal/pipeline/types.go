package pipeline

import (
	"context"

	"lyrics-corpus/pkg/music"
)

// SongRequest 待处理的歌曲
type SongRequest struct {
	Order  string `json:"order" toml:"order"`
	Name   string `json:"name" toml:"name"`
	Artist string `json:"artist" toml:"artist"`
	// NeteaseID 手动指定的歌曲ID，非 0 时跳过搜索
	NeteaseID int64 `json:"-" toml:"netease_id"`
}

// SongResult 一首歌的处理结果，也是输出文件中的一条记录
type SongResult struct {
	Order        string               `json:"order"`
	Name         string               `json:"name"`
	Artist       string               `json:"artist"`
	ID           *int64               `json:"id"`
	Lyrics       *music.LyricDocument `json:"lyrics"`
	ParsedLyrics []string             `json:"parsedLyrics"`
}

// HasLyrics 是否解析出了歌词
func (r SongResult) HasLyrics() bool {
	return len(r.ParsedLyrics) > 0
}

// State 单首歌的处理状态
type State string

const (
	StatePending   State = "PENDING"
	StateSearching State = "SEARCHING"
	StateFoundID   State = "FOUND_ID"
	StateNoID      State = "NO_ID"
	StateFetching  State = "FETCHING"
	StateHasLyrics State = "HAS_LYRICS"
	StateNoLyrics  State = "NO_LYRICS"
	StateDone      State = "DONE"
)

// IdentifierFinder 搜索歌曲ID，由 music.Resolver 实现
type IdentifierFinder interface {
	FindIdentifier(ctx context.Context, title, artist string) (int64, bool)
}

// LyricFetcher 获取歌词，由 music.Fetcher 实现
type LyricFetcher interface {
	FetchLyrics(ctx context.Context, songID int64) (*music.LyricDocument, bool)
}

var (
	_ IdentifierFinder = (*music.Resolver)(nil)
	_ LyricFetcher     = (*music.Fetcher)(nil)
)
