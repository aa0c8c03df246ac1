package chunker

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"textchunk/pkg/langdetect"
)

var paragraphSep = regexp.MustCompile(`\n\s*\n`)

var errNegativeOverlap = errors.New("overlap must be non-negative")

// defaultParagraphMerge is the rune length under which a paragraph is
// folded into its neighbor instead of standing alone.
const defaultParagraphMerge = 100

// ParagraphConfig extends the size policy with the rule-only knobs:
// overlap seeding across hard cuts and short-paragraph merging.
type ParagraphConfig struct {
	MaxChunkSize      int
	MinChunkSize      int
	Overlap           int
	MergeThreshold    int
	OverflowTolerance float64
}

func (c ParagraphConfig) validate() error {
	cfg := AssemblerConfig{MaxChunkSize: c.MaxChunkSize, MinChunkSize: c.MinChunkSize}
	if err := cfg.validate(); err != nil {
		return err
	}
	if c.Overlap < 0 {
		return errNegativeOverlap
	}
	return nil
}

// ParagraphChunker is the rule-first strategy: paragraphs are the
// atomic units, size thresholds drive the cuts, and an optional
// oracle adds topic boundaries. With a nil oracle and a positive
// overlap it degrades to the plain sliding-overlap splitter.
type ParagraphChunker struct {
	cfg    ParagraphConfig
	oracle BoundaryOracle
	logger *zap.Logger
}

func NewParagraphChunker(cfg ParagraphConfig, oracle BoundaryOracle, logger *zap.Logger) (*ParagraphChunker, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.MergeThreshold <= 0 {
		cfg.MergeThreshold = defaultParagraphMerge
	}
	if cfg.OverflowTolerance <= 0 {
		cfg.OverflowTolerance = defaultOverflowTolerance
	}
	return &ParagraphChunker{cfg: cfg, oracle: oracle, logger: logger}, nil
}

// ChunkText splits text on blank lines and reassembles paragraphs
// into bounded chunks. Overlap seeding intentionally duplicates the
// tail of the previous chunk to preserve local context across a hard
// size cut when no semantic judgment is available.
func (p *ParagraphChunker) ChunkText(ctx context.Context, text string) ([]string, error) {
	paragraphs := p.splitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil, nil
	}

	lang := langdetect.Detect(text)

	var chunks []string
	current := ""

	flush := func() {
		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}
	}

	for _, para := range paragraphs {
		paraLen := utf8.RuneCountInString(para)

		// Oversize paragraph: atomic, emitted verbatim.
		if paraLen > p.cfg.MaxChunkSize {
			flush()
			chunks = append(chunks, para)
			continue
		}

		if current == "" {
			current = para
			continue
		}

		currentLen := utf8.RuneCountInString(current)
		combined := currentLen + 2 + paraLen

		if combined > p.cfg.MaxChunkSize {
			if currentLen >= p.cfg.MinChunkSize {
				chunks = append(chunks, current)
				current = p.seedOverlap(current) + para
			} else if float64(combined) <= float64(p.cfg.MaxChunkSize)*p.cfg.OverflowTolerance {
				current += "\n\n" + para
			} else {
				chunks = append(chunks, current)
				current = p.seedOverlap(current) + para
			}
			continue
		}

		if currentLen >= p.cfg.MinChunkSize && p.decideBoundary(ctx, current, para, lang) {
			// Topic shift: no overlap seeding, the cut is semantic.
			chunks = append(chunks, current)
			current = para
			continue
		}
		current += "\n\n" + para
	}

	flush()
	return chunks, nil
}

func (p *ParagraphChunker) decideBoundary(ctx context.Context, prior, candidate string, lang langdetect.Lang) bool {
	if p.oracle == nil {
		return false
	}
	newTopic, err := p.oracle.Decide(ctx, prior, candidate, lang)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("boundary oracle unavailable, keeping same topic", zap.Error(err))
		}
		return false
	}
	return newTopic
}

// splitParagraphs cuts on blank lines and folds short paragraphs into
// the accumulating one so stray headings do not become chunks.
func (p *ParagraphChunker) splitParagraphs(text string) []string {
	parts := paragraphSep.Split(strings.TrimSpace(text), -1)

	var paragraphs []string
	pending := ""
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if utf8.RuneCountInString(part) < p.cfg.MergeThreshold && pending != "" {
			pending += "\n\n" + part
			continue
		}
		if pending != "" {
			paragraphs = append(paragraphs, pending)
		}
		pending = part
	}
	if pending != "" {
		paragraphs = append(paragraphs, pending)
	}
	return paragraphs
}

// seedOverlap returns the trailing overlap of a finished chunk, cut at
// the nearest preceding paragraph boundary when one exists.
func (p *ParagraphChunker) seedOverlap(chunk string) string {
	if p.cfg.Overlap <= 0 {
		return ""
	}
	runes := []rune(chunk)
	if len(runes) <= p.cfg.Overlap {
		return ""
	}

	tail := string(runes[len(runes)-p.cfg.Overlap:])
	if idx := strings.LastIndex(tail, "\n\n"); idx > 0 {
		tail = tail[idx+2:]
	}
	return tail + "\n\n"
}
