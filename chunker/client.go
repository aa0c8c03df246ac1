package chunker

import (
	"context"

	"textchunk/pkg/langdetect"
)

// Chunker splits a document into ordered, bounded-size chunks.
type Chunker interface {
	ChunkText(ctx context.Context, text string) ([]string, error)
}

// BoundaryOracle classifies two adjacent text spans as same-topic or
// new-topic. Implementations report transport failures, timeouts and
// unparseable responses as errors; the conservative same-topic
// fallback is the assembler's policy, not the oracle's.
type BoundaryOracle interface {
	Decide(ctx context.Context, prior, candidate string, lang langdetect.Lang) (newTopic bool, err error)
}

// CohesionFilter is a cheap lexical heuristic consulted before paying
// for an oracle call. A true result means the spans are confidently
// same-topic and the oracle can be skipped; false means undecided.
type CohesionFilter interface {
	SameTopic(prior, candidate string, lang langdetect.Lang) bool
}
