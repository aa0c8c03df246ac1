package chunker

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"
)

// RecursiveChunker is the fallback strategy for inputs with no usable
// sentence or paragraph structure (logs, transcripts, flattened
// exports). It delegates to a recursive character splitter biased
// toward sentence separators.
type RecursiveChunker struct {
	splitter *textsplitter.RecursiveCharacter
}

func NewRecursiveChunker(chunkSize, overlap int) (*RecursiveChunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunkSize must be positive, got %d", chunkSize)
	}
	if overlap < 0 {
		return nil, errNegativeOverlap
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(overlap),
		textsplitter.WithSeparators([]string{"\n\n", "\n", ".", "!", "?", " ", ""}),
		textsplitter.WithKeepSeparator(true),
	)
	return &RecursiveChunker{splitter: &splitter}, nil
}

func (c *RecursiveChunker) ChunkText(ctx context.Context, text string) ([]string, error) {
	chunks, err := c.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split text: %w", err)
	}
	return chunks, nil
}
