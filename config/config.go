package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults mirror the operating points the chunking strategies were
// tuned at.
const (
	defaultAPIPort           = 8080
	defaultLMStudioServerURL = "http://localhost:1234"
	defaultAbbreviationFile  = "common_abbreviations.yaml"

	defaultSemanticMaxChunkSize  = 2000
	defaultSemanticMinChunkSize  = 300
	defaultParagraphMaxChunkSize = 1500
	defaultParagraphMinChunkSize = 500
	defaultParagraphOverlap      = 200
)

type Config struct {
	APIPort           int
	LMStudioServerURL string
	AbbreviationFile  string
	DecisionCachePath string // empty disables the decision cache

	SemanticMaxChunkSize  int
	SemanticMinChunkSize  int
	ParagraphMaxChunkSize int
	ParagraphMinChunkSize int
	ParagraphOverlap      int
}

func Load() (*Config, error) {
	cfg := &Config{
		LMStudioServerURL: getEnv("LM_STUDIO_SERVER_URL", defaultLMStudioServerURL),
		AbbreviationFile:  getEnv("ABBREVIATION_FILE", defaultAbbreviationFile),
		DecisionCachePath: os.Getenv("DECISION_CACHE_PATH"),
	}

	var err error
	if cfg.APIPort, err = getEnvInt("API_PORT", defaultAPIPort); err != nil {
		return nil, err
	}
	if cfg.SemanticMaxChunkSize, err = getEnvInt("SEMANTIC_MAX_CHUNK_SIZE", defaultSemanticMaxChunkSize); err != nil {
		return nil, err
	}
	if cfg.SemanticMinChunkSize, err = getEnvInt("SEMANTIC_MIN_CHUNK_SIZE", defaultSemanticMinChunkSize); err != nil {
		return nil, err
	}
	if cfg.ParagraphMaxChunkSize, err = getEnvInt("PARAGRAPH_MAX_CHUNK_SIZE", defaultParagraphMaxChunkSize); err != nil {
		return nil, err
	}
	if cfg.ParagraphMinChunkSize, err = getEnvInt("PARAGRAPH_MIN_CHUNK_SIZE", defaultParagraphMinChunkSize); err != nil {
		return nil, err
	}
	if cfg.ParagraphOverlap, err = getEnvInt("PARAGRAPH_OVERLAP", defaultParagraphOverlap); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("API_PORT must be in 1..65535, got %d", c.APIPort)
	}
	if c.LMStudioServerURL == "" {
		return fmt.Errorf("LM_STUDIO_SERVER_URL must not be empty")
	}
	if err := validateSizes("SEMANTIC", c.SemanticMaxChunkSize, c.SemanticMinChunkSize); err != nil {
		return err
	}
	if err := validateSizes("PARAGRAPH", c.ParagraphMaxChunkSize, c.ParagraphMinChunkSize); err != nil {
		return err
	}
	if c.ParagraphOverlap < 0 {
		return fmt.Errorf("PARAGRAPH_OVERLAP must be non-negative, got %d", c.ParagraphOverlap)
	}
	return nil
}

func validateSizes(prefix string, maxSize, minSize int) error {
	if maxSize <= 0 {
		return fmt.Errorf("%s_MAX_CHUNK_SIZE must be positive, got %d", prefix, maxSize)
	}
	if minSize < 0 || minSize > maxSize {
		return fmt.Errorf("%s_MIN_CHUNK_SIZE must be in 0..%d, got %d", prefix, maxSize, minSize)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return n, nil
}
