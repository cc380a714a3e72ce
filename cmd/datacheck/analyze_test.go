package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/datacheck/internal/config"
)

// TestBuildConfig tests flag-to-config mapping.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"data.csv"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.InputPath != "data.csv" {
			t.Errorf("got input %q, want data.csv", cfg.InputPath)
		}
		if cfg.Delimiter != "," {
			t.Errorf("got delimiter %q, want comma", cfg.Delimiter)
		}
		if cfg.IQRMultiplier != config.DefaultIQRMultiplier {
			t.Errorf("got multiplier %v, want %v", cfg.IQRMultiplier, config.DefaultIQRMultiplier)
		}
		if cfg.JSONReport || cfg.MarkdownReport || cfg.SaveToDB {
			t.Error("output switches should default to off")
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("flags map onto the config", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		args := []string{
			"--delimiter", ";",
			"--encoding", "shift_jis",
			"--null-values", "NA,missing",
			"--iqr-multiplier", "3.0",
			"--jobs", "2",
			"--json",
			"--no-plots",
			"--save",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"sales.csv"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Delimiter != ";" {
			t.Errorf("got delimiter %q, want semicolon", cfg.Delimiter)
		}
		if cfg.Encoding != "shift_jis" {
			t.Errorf("got encoding %q, want shift_jis", cfg.Encoding)
		}
		if len(cfg.NullValues) != 2 {
			t.Errorf("got null values %v, want two entries", cfg.NullValues)
		}
		if cfg.IQRMultiplier != 3.0 {
			t.Errorf("got multiplier %v, want 3.0", cfg.IQRMultiplier)
		}
		if cfg.Jobs != 2 {
			t.Errorf("got jobs %d, want 2", cfg.Jobs)
		}
		if !cfg.JSONReport || !cfg.NoPlots || !cfg.SaveToDB {
			t.Error("boolean switches should be set")
		}
	})

	t.Run("conflicting formats fail validation", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags([]string{"--json", "--markdown"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"data.csv"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cfg.Validate(); !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("got %v, want ErrConflictingReportFormats", err)
		}
	})

	t.Run("explicit missing config file fails", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		missing := filepath.Join(t.TempDir(), "nope.yml")
		if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		if _, err := buildConfig(cmd, []string{"data.csv"}); err == nil {
			t.Error("expected error for explicitly named missing config file")
		}
	})

	t.Run("explicit config file is loaded", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yml")
		if err := os.WriteFile(path, []byte("delimiter: \";\"\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"data.csv"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.FileConfig == nil || cfg.FileConfig.Delimiter != ";" {
			t.Error("file config should carry the loaded delimiter")
		}
	})
}
