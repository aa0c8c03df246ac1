package text

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"textchunk/chunker"
	"textchunk/writer"
)

// Core walks a directory, loads every supported document and writes
// its chunks next to the source file. A document that fails to load
// or chunk is logged and skipped so one bad file never stops a batch.
type Core struct {
	plainLoader Loader
	htmlLoader  Loader
	chunker     chunker.Chunker
	writer      *writer.Writer
	method      string
	maxSize     int
	minSize     int
	logger      *zap.Logger
}

func NewCore(plainLoader, htmlLoader Loader, ch chunker.Chunker, w *writer.Writer,
	method string, maxSize, minSize int, logger *zap.Logger) *Core {
	return &Core{
		plainLoader: plainLoader,
		htmlLoader:  htmlLoader,
		chunker:     ch,
		writer:      w,
		method:      method,
		maxSize:     maxSize,
		minSize:     minSize,
		logger:      logger,
	}
}

// ProcessFile chunks a single document and writes the output
// directory derived from its path. Returns the number of chunks.
func (c *Core) ProcessFile(ctx context.Context, path string) (int, error) {
	loader := c.loaderFor(path)
	if loader == nil {
		return 0, nil
	}

	doc, err := loader.Load(path)
	if err != nil {
		return 0, err
	}

	input := doc.Text
	if doc.Markdown != "" {
		input = doc.Markdown
	}

	chunks, err := c.chunker.ChunkText(ctx, input)
	if err != nil {
		return 0, err
	}

	manifest := chunker.BuildManifest(filepath.Base(path), c.method, chunks, c.maxSize, c.minSize)
	if err := c.writer.Write(writer.OutputDir(path), chunks, manifest); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// ProcessDirectory walks dir and processes every supported file.
// Previously written chunk directories are skipped.
func (c *Core) ProcessDirectory(ctx context.Context, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.logger.Error("error walking directory", zap.Error(err))
			return err
		}

		if d.IsDir() {
			if strings.HasSuffix(d.Name(), "_chunks") {
				return filepath.SkipDir
			}
			return nil
		}

		n, err := c.ProcessFile(ctx, path)
		if err != nil {
			c.logger.Error("failed to process document",
				zap.String("path", path),
				zap.Error(err))
			return nil
		}
		if n > 0 {
			c.logger.Info("processed document",
				zap.String("path", path),
				zap.Int("chunks", n))
		}
		return nil
	})
}

func (c *Core) loaderFor(path string) Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return c.plainLoader
	case ".html", ".htm":
		return c.htmlLoader
	default:
		return nil
	}
}
