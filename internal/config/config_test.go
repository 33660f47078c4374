package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Scanner.Strategy != "most_active" || cfg.Scanner.Limit != 20 {
		t.Errorf("unexpected scanner defaults: %+v", cfg.Scanner)
	}
	if cfg.Analysis.ShortMovingAverage != 50 || cfg.Analysis.LongMovingAverage != 200 {
		t.Errorf("unexpected analysis defaults: %+v", cfg.Analysis)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_FileAndPartialDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  addr: ":9090"
scanner:
  strategy: gainers
analysis:
  rsi_period: 21
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("file value not applied: %q", cfg.Server.Addr)
	}
	if cfg.Scanner.Strategy != "gainers" {
		t.Errorf("file value not applied: %q", cfg.Scanner.Strategy)
	}
	if cfg.Analysis.RSIPeriod != 21 {
		t.Errorf("file value not applied: %d", cfg.Analysis.RSIPeriod)
	}
	// Unset fields still fall back.
	if cfg.Analysis.MACDSlow != 26 {
		t.Errorf("unset analysis fields must default, got %d", cfg.Analysis.MACDSlow)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":7070")
	t.Setenv("TICKER_STRATEGY", "mixed")
	t.Setenv("CACHE_TTL", "60")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("env override not applied: %q", cfg.Server.Addr)
	}
	if cfg.Scanner.Strategy != "mixed" {
		t.Errorf("env override not applied: %q", cfg.Scanner.Strategy)
	}
	if cfg.Analysis.CacheTTLSeconds != 60 {
		t.Errorf("env override not applied: %d", cfg.Analysis.CacheTTLSeconds)
	}
}

func TestValidate_Rejections(t *testing.T) {
	base := func() *Config {
		cfg, _ := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		return cfg
	}

	cfg := base()
	cfg.Scanner.Strategy = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown strategy must be rejected")
	}

	cfg = base()
	cfg.Scanner.Limit = 99
	if err := cfg.Validate(); err == nil {
		t.Error("limit over 50 must be rejected")
	}

	cfg = base()
	cfg.Analysis.LongMovingAverage = 40
	if err := cfg.Validate(); err == nil {
		t.Error("long MA below short MA must be rejected")
	}

	cfg = base()
	cfg.Analysis.MACDFast = 30
	if err := cfg.Validate(); err == nil {
		t.Error("macd fast >= slow must be rejected")
	}
}
