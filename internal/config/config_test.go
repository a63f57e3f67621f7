package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Countdown.Target != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[countdown]
target = "2026-01-01"
title = "Countdown to launch"
font-size = 90
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Countdown.Target == nil || *cfg.Countdown.Target != "2026-01-01" {
		t.Fatalf("unexpected target: %v", cfg.Countdown.Target)
	}
	if cfg.Countdown.Title == nil || *cfg.Countdown.Title != "Countdown to launch" {
		t.Fatalf("unexpected title: %v", cfg.Countdown.Title)
	}
	if cfg.Countdown.FontSize == nil || *cfg.Countdown.FontSize != 90 {
		t.Fatalf("unexpected font size: %v", cfg.Countdown.FontSize)
	}
	if cfg.Countdown.Celebration != nil {
		t.Fatalf("expected celebration to stay unset")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[countdown\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestParseTarget(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	cases := map[string]time.Time{
		"2025":                      time.Date(2025, 1, 1, 0, 0, 0, 0, loc),
		"2025-01-01":                time.Date(2025, 1, 1, 0, 0, 0, 0, loc),
		"2025-06-30T18:30":          time.Date(2025, 6, 30, 18, 30, 0, 0, loc),
		"2025-06-30 18:30:15":       time.Date(2025, 6, 30, 18, 30, 15, 0, loc),
		"2025-01-01T00:00:00Z":      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		"2025-01-01T00:00:00+01:00": time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC),
	}
	for input, want := range cases {
		got, err := ParseTarget(input, loc)
		if err != nil {
			t.Fatalf("%s: %v", input, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%s: expected %v, got %v", input, want, got)
		}
	}
	for _, bad := range []string{"", "tomorrow", "2025-13-01"} {
		if _, err := ParseTarget(bad, loc); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "countdown", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "countdown", "state.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "countdown", "countdown.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}

func TestXDGFallbackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/tester")
	if got := XDGConfigHome(); got != filepath.Join("/home/tester", ".config") {
		t.Fatalf("unexpected config home %s", got)
	}
	if got := XDGStateHome(); got != filepath.Join("/home/tester", ".local", "state") {
		t.Fatalf("unexpected state home %s", got)
	}
}
