package netease

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL   = "https://music.163.com"
	DefaultReferer   = "https://music.163.com/"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultTimeout   = 30 * time.Second

	searchPath = "/api/search/get/web"
	lyricPath  = "/api/song/lyric"

	codeOK = 200
)

var (
	// ErrNoLyric 响应成功但没有歌词字段
	ErrNoLyric = errors.New("netease: response has no lyric")
)

// StatusError 响应体中的 code 不是 200
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("netease: api returned code %d", e.Code)
}

// Artist 歌手
type Artist struct {
	Name string `json:"name"`
}

// Song 搜索结果中的一首歌
type Song struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
}

// PrimaryArtist 第一位歌手，没有歌手时返回 nil
func (s Song) PrimaryArtist() *string {
	if len(s.Artists) == 0 {
		return nil
	}
	name := s.Artists[0].Name
	return &name
}

// SearchResponse 网易云搜索API响应
type SearchResponse struct {
	Code   int `json:"code"`
	Result *struct {
		Songs []Song `json:"songs"`
	} `json:"result"`
}

// LyricResponse 网易云歌词API响应
type LyricResponse struct {
	Code int `json:"code"`
	Lrc  *struct {
		Lyric string `json:"lyric"`
	} `json:"lrc"`
}

// Options 客户端配置
type Options struct {
	BaseURL   string
	UserAgent string
	Referer   string
	Cookie    string
	Timeout   time.Duration
	// Proxy 形如 socks5://127.0.0.1:10808，为空则直连
	Proxy string
}

// Client 网易云音乐客户端
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	referer    string
	cookie     string
}

// NewClient 创建新的网易云音乐客户端
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Referer == "" {
		opts.Referer = DefaultReferer
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Cookie == "" {
		opts.Cookie = os.Getenv("NETEASE_COOKIE")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", opts.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		referer:   opts.Referer,
		cookie:    opts.Cookie,
	}, nil
}

// GetProviderName 获取提供商名称
func (c *Client) GetProviderName() string {
	return "NetEase Cloud Music"
}

// Search 搜索歌曲，返回最多 limit 条结果。没有结果时返回空切片。
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Song, error) {
	params := url.Values{}
	params.Set("csrf_token", "")
	params.Set("s", query)
	params.Set("type", "1")
	params.Set("offset", "0")
	params.Set("limit", strconv.Itoa(limit))

	var searchResp SearchResponse
	if err := c.get(ctx, searchPath, params, &searchResp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if searchResp.Code != codeOK {
		return nil, fmt.Errorf("search %q: %w", query, &StatusError{Code: searchResp.Code})
	}
	if searchResp.Result == nil {
		return nil, nil
	}
	return searchResp.Result.Songs, nil
}

// GetLyrics 获取原始带时间轴的歌词
func (c *Client) GetLyrics(ctx context.Context, songID int64) (string, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(songID, 10))
	params.Set("lv", "-1")
	params.Set("kv", "-1")
	params.Set("tv", "-1")

	var lyricResp LyricResponse
	if err := c.get(ctx, lyricPath, params, &lyricResp); err != nil {
		return "", fmt.Errorf("lyric %d: %w", songID, err)
	}
	if lyricResp.Code != codeOK {
		return "", fmt.Errorf("lyric %d: %w", songID, &StatusError{Code: lyricResp.Code})
	}
	if lyricResp.Lrc == nil || lyricResp.Lrc.Lyric == "" {
		return "", fmt.Errorf("lyric %d: %w", songID, ErrNoLyric)
	}
	return lyricResp.Lrc.Lyric, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path + "?" + params.Encode()
	zerolog.Ctx(ctx).Debug().Str("url", reqURL).Msg("NetEase request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Referer", c.referer)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
