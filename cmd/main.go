package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"textchunk/api"
	"textchunk/chunker"
	"textchunk/client"
	"textchunk/config"
	"textchunk/pkg/abbrev"
	"textchunk/pkg/decisioncache"
	"textchunk/pkg/segment"
	"textchunk/relevance"
	"textchunk/text"
	"textchunk/writer"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Segmenter
	// =========
	guard := abbrev.LoadGuard(cfg.AbbreviationFile, logger)
	segmenter := segment.NewSegmenter(guard, segment.DefaultOptions())

	// =========
	// Boundary oracle
	// =========
	var oracle chunker.BoundaryOracle = client.NewLMStudioClient(cfg.LMStudioServerURL, 0)
	if cfg.DecisionCachePath != "" {
		cache, err := decisioncache.Open(cfg.DecisionCachePath, oracle)
		if err != nil {
			logger.Fatal("failed to open decision cache", zap.Error(err))
		}
		defer cache.Close()
		oracle = cache
	}
	prefilter := relevance.NewCohesionFilter(0)

	// =========
	// Batch mode: chunk the given files or directories and exit
	// =========
	if len(os.Args) > 1 {
		assembler, err := chunker.NewSentenceAssembler(chunker.AssemblerConfig{
			MaxChunkSize: cfg.SemanticMaxChunkSize,
			MinChunkSize: cfg.SemanticMinChunkSize,
		}, segmenter, oracle, prefilter, logger)
		if err != nil {
			logger.Fatal("failed to create chunker", zap.Error(err))
		}

		core := text.NewCore(
			text.NewPlainLoader(),
			text.NewHTMLLoader(true, logger),
			assembler,
			writer.NewWriter(logger),
			api.MethodSemantic,
			cfg.SemanticMaxChunkSize,
			cfg.SemanticMinChunkSize,
			logger,
		)

		ctx := context.Background()
		for _, path := range os.Args[1:] {
			info, err := os.Stat(path)
			if err != nil {
				logger.Fatal("cannot stat input", zap.String("path", path), zap.Error(err))
			}
			if info.IsDir() {
				if err := core.ProcessDirectory(ctx, path); err != nil {
					logger.Fatal("batch run failed", zap.String("path", path), zap.Error(err))
				}
				continue
			}
			n, err := core.ProcessFile(ctx, path)
			if err != nil {
				logger.Fatal("failed to chunk file", zap.String("path", path), zap.Error(err))
			}
			logger.Info("chunked file", zap.String("path", path), zap.Int("chunks", n))
		}
		return
	}

	// =========
	// Serve mode
	// =========
	server := api.NewServer(cfg, segmenter, oracle, prefilter, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
