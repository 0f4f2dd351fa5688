package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "llm:\n  model: \"llama-3.1-8b-instant\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LLM.Model != "llama-3.1-8b-instant" {
		t.Errorf("Model = %q, want value from file", cfg.LLM.Model)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want default :8080", cfg.Server.Addr)
	}
	if cfg.LLM.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want default 0.1", cfg.LLM.Temperature)
	}
	if cfg.Retrieval.MaxIndicators != 8 || cfg.Retrieval.MaxSurveys != 3 {
		t.Errorf("Retrieval caps = %d/%d, want 8/3", cfg.Retrieval.MaxIndicators, cfg.Retrieval.MaxSurveys)
	}
	if got, want := cfg.LLM.Timeout(), 30*time.Second; got != want {
		t.Errorf("Timeout() = %v, want %v", got, want)
	}
}

func TestLoadConfig_KeyFromEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")

	cfg := Default()
	if cfg.LLM.Key != "test-key" {
		t.Errorf("Key = %q, want env value", cfg.LLM.Key)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadConfig() error = nil, want error for missing file")
	}
}
