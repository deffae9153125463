package config

import (
	"os"
	"path/filepath"
	"time"

	"lyrics-corpus/internal/pipeline"
	"lyrics-corpus/internal/seed"
	"lyrics-corpus/pkg/netease"
	"lyrics-corpus/pkg/retry"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultOutputPath = "public/assets/yangqianhua-best-songs.json"
	DefaultLogLevel   = "info"
	DefaultWorkers    = 1
	DefaultRedisTTL   = 7 * 24 * time.Hour

	configPathEnv = "LYRICS_CORPUS_CONFIG"
)

// TomlConfig TOML配置文件结构
type TomlConfig struct {
	App struct {
		OutputPath string `toml:"output_path"`
		LogLevel   string `toml:"log_level"`
		Workers    int    `toml:"workers"`
		SongDelay  string `toml:"song_delay"`
	} `toml:"app"`

	Netease struct {
		BaseURL   string `toml:"base_url"`
		Cookie    string `toml:"cookie"`
		UserAgent string `toml:"user_agent"`
		Referer   string `toml:"referer"`
		Timeout   string `toml:"timeout"`
		Proxy     string `toml:"proxy"`
	} `toml:"netease"`

	Retry struct {
		MaxAttempts int    `toml:"max_attempts"`
		Delay       string `toml:"delay"`
	} `toml:"retry"`

	Redis struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
		TTL      string `toml:"ttl"`
	} `toml:"redis"`

	Songs []pipeline.SongRequest `toml:"songs"`
}

// AppConfig 运行配置
type AppConfig struct {
	OutputPath string
	LogLevel   string
	Workers    int
	SongDelay  time.Duration
}

// RedisConfig Redis配置，Addr 为空时使用内存缓存；TTL 为 0 表示不过期
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Config 主配置结构
type Config struct {
	App     AppConfig
	Netease netease.Options
	Retry   retry.Policy
	Redis   RedisConfig
	Songs   []pipeline.SongRequest
}

// Default 默认配置
func Default() *Config {
	return &Config{
		App: AppConfig{
			OutputPath: DefaultOutputPath,
			LogLevel:   DefaultLogLevel,
			Workers:    DefaultWorkers,
			SongDelay:  pipeline.DefaultSongDelay,
		},
		Netease: netease.Options{
			BaseURL:   netease.DefaultBaseURL,
			UserAgent: netease.DefaultUserAgent,
			Referer:   netease.DefaultReferer,
			Timeout:   netease.DefaultTimeout,
		},
		Retry: retry.DefaultPolicy(),
		Redis: RedisConfig{TTL: DefaultRedisTTL},
		Songs: seed.DefaultSongs(),
	}
}

// getConfigPath 获取配置文件路径
func getConfigPath() string {
	if p := os.Getenv(configPathEnv); p != "" {
		return p
	}

	// 优先使用 XDG_CONFIG_HOME 环境变量
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "lyrics-corpus", "config.toml")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("Cannot get user home directory")
		return "config.toml"
	}

	return filepath.Join(homeDir, ".config", "lyrics-corpus", "config.toml")
}

// Load 加载 .env 与配置文件，出错时使用默认配置
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := LoadFile(getConfigPath())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load config file, using defaults")
		cfg = Default()
		applyEnv(cfg)
	}
	return cfg
}

// LoadFile 从指定路径加载配置，文件不存在时返回默认配置
func LoadFile(path string) (*Config, error) {
	var tomlConfig TomlConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Info().Str("path", path).Msg("Config file not found, using defaults")
	} else {
		if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("Loaded config")
	}

	cfg := Default()
	apply(cfg, &tomlConfig)
	applyEnv(cfg)
	return cfg, nil
}

func apply(cfg *Config, tc *TomlConfig) {
	if tc.App.OutputPath != "" {
		cfg.App.OutputPath = tc.App.OutputPath
	}
	if tc.App.LogLevel != "" {
		cfg.App.LogLevel = tc.App.LogLevel
	}
	if tc.App.Workers > 0 {
		cfg.App.Workers = tc.App.Workers
	}
	parseDuration("app.song_delay", tc.App.SongDelay, &cfg.App.SongDelay)

	if tc.Netease.BaseURL != "" {
		cfg.Netease.BaseURL = tc.Netease.BaseURL
	}
	if tc.Netease.Cookie != "" {
		cfg.Netease.Cookie = tc.Netease.Cookie
	}
	if tc.Netease.UserAgent != "" {
		cfg.Netease.UserAgent = tc.Netease.UserAgent
	}
	if tc.Netease.Referer != "" {
		cfg.Netease.Referer = tc.Netease.Referer
	}
	if tc.Netease.Proxy != "" {
		cfg.Netease.Proxy = tc.Netease.Proxy
	}
	parseDuration("netease.timeout", tc.Netease.Timeout, &cfg.Netease.Timeout)

	if tc.Retry.MaxAttempts > 0 {
		cfg.Retry.MaxAttempts = tc.Retry.MaxAttempts
	}
	parseDuration("retry.delay", tc.Retry.Delay, &cfg.Retry.Delay)

	if tc.Redis.Addr != "" {
		cfg.Redis.Addr = tc.Redis.Addr
	}
	if tc.Redis.Password != "" {
		cfg.Redis.Password = tc.Redis.Password
	}
	if tc.Redis.DB != 0 {
		cfg.Redis.DB = tc.Redis.DB
	}
	parseDuration("redis.ttl", tc.Redis.TTL, &cfg.Redis.TTL)

	if len(tc.Songs) > 0 {
		cfg.Songs = tc.Songs
	}
}

func applyEnv(cfg *Config) {
	if cookie := os.Getenv("NETEASE_COOKIE"); cookie != "" {
		cfg.Netease.Cookie = cookie
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
}

// parseDuration 解析失败时保留默认值
func parseDuration(field, value string, dst *time.Duration) {
	if value == "" {
		return
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Warn().Str("field", field).Str("value", value).Msg("Invalid duration format, using default")
		return
	}
	*dst = d
}
