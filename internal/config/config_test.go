package config

import "testing"

func TestLoadUsesDefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Graph.K != 4 {
		t.Errorf("expected default k=4, got %d", cfg.Graph.K)
	}
	if cfg.Graph.DefaultMode != "edge" {
		t.Errorf("expected default mode edge, got %q", cfg.Graph.DefaultMode)
	}
}

func TestValidateRejectsSmallK(t *testing.T) {
	cfg := &Config{Graph: GraphConfig{K: 1, DefaultMode: "edge"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for k < 2")
	}
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := &Config{Graph: GraphConfig{K: 4, DefaultMode: "bogus"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown default_mode")
	}
}
