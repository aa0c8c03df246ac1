package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"textchunk/chunker"
)

// Writer persists a chunked document as numbered chunk files plus a
// metadata.json manifest in a single output directory.
type Writer struct {
	logger *zap.Logger
}

func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{logger: logger}
}

// OutputDir derives the chunk directory for an input file:
// /path/to/report.txt becomes /path/to/report_chunks.
func OutputDir(inputPath string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(filepath.Dir(inputPath), base+"_chunks")
}

// Write emits every chunk under its manifest filename and then the
// manifest itself. The directory is created if needed; existing chunk
// files are overwritten so a re-run replaces the previous output.
func (w *Writer) Write(dir string, chunks []string, manifest chunker.Manifest) error {
	if len(chunks) != len(manifest.Chunks) {
		return fmt.Errorf("manifest lists %d chunks but %d were given", len(manifest.Chunks), len(chunks))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for i, chunk := range chunks {
		path := filepath.Join(dir, manifest.Chunks[i].Filename)
		if err := os.WriteFile(path, []byte(chunk), 0644); err != nil {
			return fmt.Errorf("failed to write chunk %d: %w", i+1, err)
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "metadata.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	w.logger.Info("wrote chunk directory",
		zap.String("dir", dir),
		zap.Int("chunks", len(chunks)))
	return nil
}
