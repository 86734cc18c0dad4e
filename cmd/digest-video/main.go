package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"

	"github.com/kdimtricp/videodigest/internal/ai"
	"github.com/kdimtricp/videodigest/internal/cache"
	"github.com/kdimtricp/videodigest/internal/config"
	"github.com/kdimtricp/videodigest/internal/media"
	"github.com/kdimtricp/videodigest/internal/pipeline"
)

func main() {
	var (
		filePath  = flag.String("file", "", "Video file to analyze")
		cachePath = flag.String("cache", "", "SQLite cache path (overrides CACHE_DB_PATH; empty = in-memory)")
		verbose   = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: digest-video -file <video> [-cache <path>] [-v]")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))

	cfg, err := config.New()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		logger.Error("cannot read video file", "path", *filePath, "error", err)
		os.Exit(1)
	}

	var store pipeline.ResultStore
	dbPath := *cachePath
	if dbPath == "" {
		dbPath = cfg.CacheDBPath
	}
	if dbPath != "" {
		sqliteStore, err := cache.NewSQLiteStore(dbPath, logger)
		if err != nil {
			logger.Error("cannot open cache database", "path", dbPath, "error", err)
			os.Exit(1)
		}
		defer sqliteStore.Close()
		store = sqliteStore
	} else {
		store = cache.NewMemoryStore()
	}

	client := ai.NewClient(cfg.APIKey, cfg.BaseURL)
	runner := media.NewExecRunner(cfg.CommandTimeout, logger)

	processor := pipeline.NewVideoProcessor(
		store,
		media.NewProber(runner, cfg.FFprobePath, logger),
		media.NewFrameExtractor(runner, frameOptions(cfg), logger),
		media.NewAudioExtractor(runner, cfg.FFmpegPath, logger),
		ai.NewVisionAnalyzer(client, cfg.VisionModel, cfg.BatchSize, logger),
		ai.NewSummarizer(client, cfg.ChatModel, logger),
		ai.NewTranscriber(client, cfg.TranscribeModel, media.AudioSampleRate, media.AudioBytesPerSample, logger),
		logger,
		pipeline.Options{WorkDir: cfg.WorkDir},
	)

	result, err := processor.Process(context.Background(), data, filepath.Base(*filePath), func(p pipeline.ProcessingProgress) {
		logger.Info("progress", "stage", p.Stage, "percent", p.Progress, "message", p.Message)
	})
	if err != nil {
		logger.Error("video analysis failed", "error", err)
		os.Exit(1)
	}

	fmt.Println(result.CombinedContent)
	logger.Info("done",
		"frames", result.FrameCount,
		"key_moments", len(result.KeyMoments),
		"confidence", result.Confidence,
		"thumbnail_bytes", len(result.Thumbnail),
	)
}

func frameOptions(cfg *config.Config) media.FrameOptions {
	opts := media.DefaultFrameOptions()
	opts.FFmpegPath = cfg.FFmpegPath
	return opts
}
