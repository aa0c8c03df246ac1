package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"textchunk/chunker"
)

const (
	MethodSemantic  = "semantic"
	MethodParagraph = "paragraph"
	MethodRecursive = "recursive"
)

// ChunkRequest is the body of POST /api/chunk. Zero sizes fall back
// to the configured defaults for the chosen method.
type ChunkRequest struct {
	Text         string `json:"text"`
	Method       string `json:"method"`
	MaxChunkSize int    `json:"max_chunk_size,omitempty"`
	MinChunkSize int    `json:"min_chunk_size,omitempty"`
	Overlap      int    `json:"overlap,omitempty"`
}

type ChunkResponse struct {
	Chunks   []string         `json:"chunks"`
	Manifest chunker.Manifest `json:"manifest"`
}

// ChunkHandler chunks the posted text with the requested method.
// Invalid requests and chunker configuration errors are 400; only
// processing failures are 500.
func (s *Server) ChunkHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "missing text parameter", http.StatusBadRequest)
		return
	}
	if req.Method == "" {
		req.Method = MethodSemantic
	}

	ch, maxSize, minSize, err := s.buildChunker(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	chunks, err := ch.ChunkText(r.Context(), req.Text)
	if err != nil {
		s.logger.Error("chunking failed",
			zap.String("method", req.Method),
			zap.Error(err))
		http.Error(w, "chunking failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := ChunkResponse{
		Chunks:   chunks,
		Manifest: chunker.BuildManifest("", req.Method, chunks, maxSize, minSize),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) buildChunker(req ChunkRequest) (chunker.Chunker, int, int, error) {
	switch req.Method {
	case MethodSemantic:
		maxSize := orDefault(req.MaxChunkSize, s.cfg.SemanticMaxChunkSize)
		minSize := orDefault(req.MinChunkSize, s.cfg.SemanticMinChunkSize)
		ch, err := chunker.NewSentenceAssembler(chunker.AssemblerConfig{
			MaxChunkSize: maxSize,
			MinChunkSize: minSize,
		}, s.segmenter, s.oracle, s.prefilter, s.logger)
		return ch, maxSize, minSize, err

	case MethodParagraph:
		maxSize := orDefault(req.MaxChunkSize, s.cfg.ParagraphMaxChunkSize)
		minSize := orDefault(req.MinChunkSize, s.cfg.ParagraphMinChunkSize)
		overlap := orDefault(req.Overlap, s.cfg.ParagraphOverlap)
		ch, err := chunker.NewParagraphChunker(chunker.ParagraphConfig{
			MaxChunkSize: maxSize,
			MinChunkSize: minSize,
			Overlap:      overlap,
		}, nil, s.logger)
		return ch, maxSize, minSize, err

	case MethodRecursive:
		maxSize := orDefault(req.MaxChunkSize, s.cfg.SemanticMaxChunkSize)
		overlap := orDefault(req.Overlap, s.cfg.ParagraphOverlap)
		ch, err := chunker.NewRecursiveChunker(maxSize, overlap)
		return ch, maxSize, 0, err

	default:
		return nil, 0, 0, fmt.Errorf("unknown chunking method %q", req.Method)
	}
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
