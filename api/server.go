package api

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"textchunk/chunker"
	"textchunk/config"
	"textchunk/pkg/segment"
)

// Server exposes the chunking engine over HTTP.
type Server struct {
	cfg       *config.Config
	segmenter *segment.Segmenter
	oracle    chunker.BoundaryOracle
	prefilter chunker.CohesionFilter
	logger    *zap.Logger
}

func NewServer(cfg *config.Config, seg *segment.Segmenter, oracle chunker.BoundaryOracle,
	prefilter chunker.CohesionFilter, logger *zap.Logger) *Server {
	return &Server{
		cfg:       cfg,
		segmenter: seg,
		oracle:    oracle,
		prefilter: prefilter,
		logger:    logger,
	}
}

// Start blocks serving the API until the listener fails.
func (s *Server) Start() error {
	s.logger.Info("starting API server", zap.Int("port", s.cfg.APIPort))
	return http.ListenAndServe(fmt.Sprintf(":%d", s.cfg.APIPort), s.Handler())
}

// Handler builds the route table. Split out from Start so tests can
// drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chunk", s.ChunkHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}
