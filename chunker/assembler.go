package chunker

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"textchunk/pkg/langdetect"
	"textchunk/pkg/segment"
)

// defaultOverflowTolerance allows an under-minimum chunk to absorb one
// more sentence slightly past the maximum instead of being emitted
// pathologically small.
const defaultOverflowTolerance = 1.2

// AssemblerConfig holds the per-document size policy. Sizes are rune
// counts.
type AssemblerConfig struct {
	MaxChunkSize      int
	MinChunkSize      int
	OverflowTolerance float64
}

func (c AssemblerConfig) validate() error {
	if c.MaxChunkSize <= 0 {
		return fmt.Errorf("maxChunkSize must be positive, got %d", c.MaxChunkSize)
	}
	if c.MinChunkSize < 0 || c.MinChunkSize > c.MaxChunkSize {
		return fmt.Errorf("minChunkSize must be within [0, maxChunkSize], got min=%d max=%d",
			c.MinChunkSize, c.MaxChunkSize)
	}
	return nil
}

// SentenceAssembler groups segmented sentences into chunks, flushing
// on size pressure and, when a boundary oracle is attached, on topic
// shifts. A nil oracle yields pure rule-based behavior.
type SentenceAssembler struct {
	cfg       AssemblerConfig
	segmenter *segment.Segmenter
	oracle    BoundaryOracle
	prefilter CohesionFilter
	logger    *zap.Logger
}

func NewSentenceAssembler(cfg AssemblerConfig, seg *segment.Segmenter, oracle BoundaryOracle,
	prefilter CohesionFilter, logger *zap.Logger) (*SentenceAssembler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.OverflowTolerance <= 0 {
		cfg.OverflowTolerance = defaultOverflowTolerance
	}
	return &SentenceAssembler{
		cfg:       cfg,
		segmenter: seg,
		oracle:    oracle,
		prefilter: prefilter,
		logger:    logger,
	}, nil
}

// ChunkText segments text and assembles the sentences into chunks.
// Chunks are emitted verbatim: concatenating them reproduces the
// document, and every sentence lands in exactly one chunk.
func (a *SentenceAssembler) ChunkText(ctx context.Context, text string) ([]string, error) {
	sentences := a.segmenter.Segment(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	lang := langdetect.Detect(text)

	var chunks []string
	var current strings.Builder
	currentLen := 0
	merged := 0

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
			merged = 0
		}
	}
	appendUnit := func(unit string, unitLen int) {
		current.WriteString(unit)
		currentLen += unitLen
		merged++
	}

	for _, sent := range sentences {
		unit := sent.Text + sent.Trailing
		unitLen := utf8.RuneCountInString(unit)

		// A single sentence larger than the budget is atomic: it
		// becomes its own chunk and is never subdivided.
		if unitLen > a.cfg.MaxChunkSize {
			flush()
			chunks = append(chunks, unit)
			continue
		}

		combined := currentLen + unitLen
		if combined > a.cfg.MaxChunkSize {
			if currentLen >= a.cfg.MinChunkSize {
				flush()
				appendUnit(unit, unitLen)
			} else if float64(combined) <= float64(a.cfg.MaxChunkSize)*a.cfg.OverflowTolerance {
				// Under-minimum chunk: tolerate bounded overflow
				// rather than emit a tiny chunk.
				appendUnit(unit, unitLen)
			} else {
				flush()
				appendUnit(unit, unitLen)
			}
			continue
		}

		if current.Len() == 0 {
			appendUnit(unit, unitLen)
			continue
		}

		candidate := strings.TrimSpace(sent.Text)
		if currentLen >= a.cfg.MinChunkSize && merged >= 2 && candidate != "" {
			if a.decideBoundary(ctx, current.String(), candidate, lang) {
				flush()
				appendUnit(unit, unitLen)
				continue
			}
		}
		appendUnit(unit, unitLen)
	}

	flush()
	return chunks, nil
}

// decideBoundary asks the cohesion prefilter, then the oracle, whether
// candidate starts a new topic. Any oracle failure degrades to
// same-topic so the document pipeline always makes progress.
func (a *SentenceAssembler) decideBoundary(ctx context.Context, prior, candidate string, lang langdetect.Lang) bool {
	if a.prefilter != nil && a.prefilter.SameTopic(prior, candidate, lang) {
		return false
	}
	if a.oracle == nil {
		return false
	}

	newTopic, err := a.oracle.Decide(ctx, prior, candidate, lang)
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("boundary oracle unavailable, keeping same topic",
				zap.Error(err))
		}
		return false
	}
	return newTopic
}
