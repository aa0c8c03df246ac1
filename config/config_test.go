package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIPort != defaultAPIPort {
		t.Errorf("APIPort = %d, want %d", cfg.APIPort, defaultAPIPort)
	}
	if cfg.SemanticMaxChunkSize != defaultSemanticMaxChunkSize {
		t.Errorf("SemanticMaxChunkSize = %d, want %d",
			cfg.SemanticMaxChunkSize, defaultSemanticMaxChunkSize)
	}
	if cfg.DecisionCachePath != "" {
		t.Errorf("DecisionCachePath = %q, want empty by default", cfg.DecisionCachePath)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("SEMANTIC_MAX_CHUNK_SIZE", "1000")
	t.Setenv("SEMANTIC_MIN_CHUNK_SIZE", "100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", cfg.APIPort)
	}
	if cfg.SemanticMaxChunkSize != 1000 || cfg.SemanticMinChunkSize != 100 {
		t.Errorf("semantic sizes = %d/%d, want 1000/100",
			cfg.SemanticMaxChunkSize, cfg.SemanticMinChunkSize)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"NonNumericPort", "API_PORT", "eighty"},
		{"PortOutOfRange", "API_PORT", "70000"},
		{"MinAboveMax", "SEMANTIC_MIN_CHUNK_SIZE", "5000"},
		{"NegativeOverlap", "PARAGRAPH_OVERLAP", "-1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}
