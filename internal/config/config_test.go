package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Metric != MetricBLEU {
		t.Errorf("expected Metric bleu, got %q", cfg.Metric)
	}
	if cfg.Make != "make" {
		t.Errorf("expected Make make, got %q", cfg.Make)
	}
	if cfg.Encoding != "utf-8" {
		t.Errorf("expected Encoding utf-8, got %q", cfg.Encoding)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel info, got %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "console" {
		t.Errorf("expected LogFormat console, got %q", cfg.LogFormat)
	}
}

func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	testPath := filepath.Join(dir, "test.txt")
	if err := os.WriteFile(testPath, []byte("a ||| b ||| c ||| d\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.Lang = "en"
	cfg.Dataset = "aspec_ja_en"
	cfg.TestPath = testPath
	cfg.Input = filepath.Join(dir, "hyp.txt")
	cfg.CacheDir = filepath.Join(dir, "cache")
	cfg.ProceduresDir = filepath.Join(dir, "procedures")
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		is      error
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "ribes metric", mutate: func(c *Config) { c.Metric = MetricRIBES }},
		{name: "missing test path", mutate: func(c *Config) { c.TestPath = "" }, wantErr: true, is: ErrMissingTestPath},
		{name: "blank test path", mutate: func(c *Config) { c.TestPath = "  " }, wantErr: true, is: ErrMissingTestPath},
		{name: "test file absent", mutate: func(c *Config) { c.TestPath += ".missing" }, wantErr: true, is: ErrTestFileNotFound},
		{name: "test path is dir", mutate: func(c *Config) { c.TestPath = filepath.Dir(c.TestPath) }, wantErr: true, is: ErrTestFileNotFound},
		{name: "empty lang", mutate: func(c *Config) { c.Lang = "" }, wantErr: true},
		{name: "unknown dataset", mutate: func(c *Config) { c.Dataset = "wmt14" }, wantErr: true},
		{name: "table-only dataset", mutate: func(c *Config) { c.Dataset = "aspec_ja_zh" }, wantErr: true},
		{name: "empty input", mutate: func(c *Config) { c.Input = "" }, wantErr: true},
		{name: "unknown metric", mutate: func(c *Config) { c.Metric = "chrf" }, wantErr: true},
		{name: "empty cache dir", mutate: func(c *Config) { c.CacheDir = "" }, wantErr: true},
		{name: "empty make", mutate: func(c *Config) { c.Make = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Validate() error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestValidateMissingTestPathTouchesNothing(t *testing.T) {
	cfg := validConfig(t)
	cfg.TestPath = ""
	if err := cfg.Validate(); !errors.Is(err, ErrMissingTestPath) {
		t.Fatalf("expected ErrMissingTestPath, got %v", err)
	}
	if _, err := os.Stat(cfg.CacheDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cache dir should not exist, stat err = %v", err)
	}
}

func TestTestSplit(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/aspec/test.txt", "test"},
		{"devtest.txt", "devtest"},
		{"/data/test", "test"},
		{"/data/test.ja-en.txt", "test.ja-en"},
	}
	for _, tt := range tests {
		c := Config{TestPath: tt.path}
		if got := c.TestSplit(); got != tt.want {
			t.Errorf("TestSplit(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestProcedurePath(t *testing.T) {
	c := Config{Lang: "ja", ProceduresDir: "/opt/wateval/procedures"}
	if got, want := c.ProcedurePath(), filepath.Join("/opt/wateval/procedures", "ja.mk"); got != want {
		t.Errorf("ProcedurePath() = %q, want %q", got, want)
	}
}
