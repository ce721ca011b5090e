package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TRANSLATION_CHUNK_SIZE", "")
	t.Setenv("TRANSLATION_CALL_INTERVAL", "")
	t.Setenv("DOMAIN_THRESHOLD_PERCENT", "")
	t.Setenv("CASE_MIN_RELEVANCE", "")
	t.Setenv("PROXY_PORT", "")
	t.Setenv("TRANSLATOR_PROVIDER", "")

	cfg := Load()
	if cfg.TranslationChunkSize != 200 {
		t.Fatalf("expected default chunk size 200, got %d", cfg.TranslationChunkSize)
	}
	if cfg.TranslationCallInterval != 500*time.Millisecond {
		t.Fatalf("expected default call interval 500ms, got %s", cfg.TranslationCallInterval)
	}
	if cfg.DomainThresholdPercent != 2 || cfg.DomainConfidenceCap != 95 {
		t.Fatalf("unexpected classifier defaults %+v", cfg)
	}
	if cfg.CaseMinRelevance != 30 || cfg.CaseMaxResults != 10 || cfg.EntityMaxResults != 20 {
		t.Fatalf("unexpected matcher defaults %+v", cfg)
	}
	if cfg.ProxyPort != "3001" {
		t.Fatalf("expected proxy port 3001, got %q", cfg.ProxyPort)
	}
	if cfg.TranslatorProvider != "libre" {
		t.Fatalf("expected libre provider, got %q", cfg.TranslatorProvider)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("TRANSLATION_CALL_INTERVAL", "750")
	t.Setenv("WORKER_JOB_TIMEOUT", "2m")
	t.Setenv("DOMAIN_CONFIDENCE_SLOPE", "4.5")
	t.Setenv("TRANSLATOR_PROVIDER", "MyMemory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("CASE_MAX_RESULTS", "not-a-number")

	cfg := Load()
	if cfg.TranslationCallInterval != 750*time.Millisecond {
		t.Fatalf("expected 750ms interval, got %s", cfg.TranslationCallInterval)
	}
	if cfg.WorkerJobTimeout != 2*time.Minute {
		t.Fatalf("expected 2m job timeout, got %s", cfg.WorkerJobTimeout)
	}
	if cfg.DomainConfidenceSlope != 4.5 {
		t.Fatalf("expected slope 4.5, got %v", cfg.DomainConfidenceSlope)
	}
	if cfg.TranslatorProvider != "mymemory" {
		t.Fatalf("expected lower-cased provider, got %q", cfg.TranslatorProvider)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CaseMaxResults != 10 {
		t.Fatalf("expected fallback for invalid int, got %d", cfg.CaseMaxResults)
	}
}
