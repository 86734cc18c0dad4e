// Package config loads pipeline configuration from environment
// variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultVisionModel     = "gpt-4o"
	DefaultChatModel       = "gpt-4o"
	DefaultTranscribeModel = "whisper-1"
	DefaultBatchSize       = 10
	DefaultCommandTimeout  = 2 * time.Minute
)

type Config struct {
	APIKey          string
	BaseURL         string
	VisionModel     string
	ChatModel       string
	TranscribeModel string

	FFmpegPath  string
	FFprobePath string

	BatchSize      int
	CommandTimeout time.Duration
	WorkDir        string
	CacheDBPath    string
	LogLevel       string
}

// New reads configuration from the environment. Only the API key is
// required; everything else has a default.
func New() (*Config, error) {
	cfg := &Config{
		APIKey:          os.Getenv("OPENAI_API_KEY"),
		BaseURL:         os.Getenv("OPENAI_BASE_URL"),
		VisionModel:     getEnv("VISION_MODEL", DefaultVisionModel),
		ChatModel:       getEnv("CHAT_MODEL", DefaultChatModel),
		TranscribeModel: getEnv("TRANSCRIBE_MODEL", DefaultTranscribeModel),
		FFmpegPath:      getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:     getEnv("FFPROBE_PATH", "ffprobe"),
		BatchSize:       DefaultBatchSize,
		CommandTimeout:  DefaultCommandTimeout,
		WorkDir:         os.Getenv("WORK_DIR"),
		CacheDBPath:     os.Getenv("CACHE_DB_PATH"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if bs := os.Getenv("VISION_BATCH_SIZE"); bs != "" {
		n, err := strconv.Atoi(bs)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid VISION_BATCH_SIZE: %q", bs)
		}
		cfg.BatchSize = n
	}

	if ct := os.Getenv("COMMAND_TIMEOUT_SECONDS"); ct != "" {
		n, err := strconv.Atoi(ct)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid COMMAND_TIMEOUT_SECONDS: %q", ct)
		}
		cfg.CommandTimeout = time.Duration(n) * time.Second
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
